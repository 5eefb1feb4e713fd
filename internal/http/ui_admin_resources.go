package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/http/validation"
)

// Admin result messages.
const (
	msgServiceCreated       = "Layanan dibuat"
	msgServiceUpdated       = "Layanan berhasil diperbarui"
	msgServiceDeleted       = "Layanan berhasil dihapus"
	msgServiceCreateFailed  = "Gagal membuat layanan"
	msgServiceUpdateFailed  = "Gagal memperbarui layanan"
	msgServiceDeleteFailed  = "Gagal menghapus layanan"
	msgStatusUpdated        = "Status diperbarui"
	msgStatusUpdateFailed   = "Gagal memperbarui status"
	msgBookingDeleted       = "Booking berhasil dihapus"
	msgBookingDeleteFailed  = "Gagal menghapus booking"
	msgUserCreated          = "User dibuat"
	msgUserCreateFailed     = "Gagal membuat user"
	msgUserUpdated          = "User berhasil diperbarui"
	msgUserUpdateFailed     = "Gagal menyimpan perubahan"
	msgUserDeleted          = "User berhasil dihapus"
	msgUserDeleteFailed     = "Gagal menghapus user"
	msgRoleUpdated          = "Role diperbarui"
	msgRoleUpdateFailed     = "Gagal mengubah role"
	msgDestinationCreated   = "Tujuan dibuat"
	msgDestinationUpdated   = "Tujuan diperbarui"
	msgDestinationDeleted   = "Tujuan dihapus"
	msgDestinationCreateErr = "Gagal membuat tujuan"
	msgDestinationUpdateErr = "Gagal memperbarui tujuan"
	msgDestinationDeleteErr = "Gagal menghapus tujuan"
	msgAircraftCreated      = "Pesawat dibuat"
	msgAircraftUpdated      = "Pesawat diperbarui"
	msgAircraftDeleted      = "Pesawat dihapus"
	msgAircraftCreateErr    = "Gagal membuat pesawat"
	msgAircraftUpdateErr    = "Gagal memperbarui pesawat"
	msgAircraftDeleteErr    = "Gagal menghapus pesawat"
)

// ---- services ----

func (h *UIHandlers) servicesResource() adminResource[model.Service, model.ServiceForm] {
	loc := h.location()
	return adminResource[model.Service, model.ServiceForm]{
		page:  PageAdminServices,
		meta:  PageMeta{Title: "Kelola Layanan - RevoBooking", PageTitle: "Kelola Layanan", CurrentPage: PageAdminServices},
		load:  h.Services.Load,
		idOf:  func(s model.Service) ident.ID { return s.ID },
		toBuf: func(s model.Service) model.ServiceForm { return model.ServiceFormFrom(s, loc) },
	}
}

// AdminServicesPage serves GET /admin/services; ?edit={id} opens the inline editor.
func (h *UIHandlers) AdminServicesPage(w http.ResponseWriter, r *http.Request) {
	renderAdminResource(h, w, r, h.servicesResource(), nil)
}

// CreateService serves POST /admin/services.
func (h *UIHandlers) CreateService(w http.ResponseWriter, r *http.Request) {
	loc := h.location()
	handleAdminMutation(h, w, r, adminMutation[model.Service, model.ServiceForm, model.ServiceForm]{
		res:    h.servicesResource(),
		action: "admin_services_create",
		parse:  parseServiceForm,
		submit: func(ctx context.Context, f model.ServiceForm) (string, error) {
			req, err := f.CreateRequest(loc)
			if err != nil {
				return "", err
			}
			return "", h.Services.Create(ctx, req)
		},
		success:  msgServiceCreated,
		failure:  msgServiceCreateFailed,
		returnTo: "/admin/services",
	})
}

// UpdateService serves POST /admin/services/{id}.
func (h *UIHandlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	loc := h.location()
	id := ident.ID(r.PathValue("id"))
	handleAdminMutation(h, w, r, adminMutation[model.Service, model.ServiceForm, model.ServiceForm]{
		res:    h.servicesResource(),
		action: "admin_services_update",
		parse:  parseServiceForm,
		submit: func(ctx context.Context, f model.ServiceForm) (string, error) {
			req, err := f.UpdateRequest(loc)
			if err != nil {
				return "", err
			}
			return "", h.Services.Update(ctx, id, req)
		},
		success:  msgServiceUpdated,
		failure:  msgServiceUpdateFailed,
		returnTo: "/admin/services",
		editing:  true,
	})
}

// DeleteService serves POST /admin/services/{id}/delete.
func (h *UIHandlers) DeleteService(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Service, model.ServiceForm, ident.ID]{
		res:      h.servicesResource(),
		action:   "admin_services_delete",
		parse:    pathID,
		submit:   h.Services.Delete,
		success:  msgServiceDeleted,
		failure:  msgServiceDeleteFailed,
		returnTo: "/admin/services",
	})
}

func parseServiceForm(r *http.Request) (model.ServiceForm, map[string]string) {
	f := model.ServiceForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		FlightDate:  strings.TrimSpace(r.PostFormValue("flightDate")),
	}
	fv := validation.New().
		Validate("name", f.Name, validation.Optional("Nama layanan", 200)).
		Validate("description", f.Description, validation.Optional("Deskripsi", 2000))
	return f, fv.Errors()
}

// ---- bookings ----

func (h *UIHandlers) bookingsResource() adminResource[model.Booking, struct{}] {
	return adminResource[model.Booking, struct{}]{
		page: PageAdminBookings,
		meta: PageMeta{Title: "Kelola Booking - RevoBooking", PageTitle: "Kelola Booking", CurrentPage: PageAdminBookings},
		load: h.Bookings.Load,
	}
}

// statusChange is a submitted booking status selection.
type statusChange struct {
	ID     ident.ID
	Status string
}

// AdminBookingsPage serves GET /admin/bookings.
func (h *UIHandlers) AdminBookingsPage(w http.ResponseWriter, r *http.Request) {
	renderAdminResource(h, w, r, h.bookingsResource(), nil)
}

// UpdateBookingStatus serves POST /admin/bookings/{id}/status. The change is sent
// as soon as it is selected; a second change for the same booking is refused
// while the first is outstanding.
func (h *UIHandlers) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Booking, struct{}, statusChange]{
		res:    h.bookingsResource(),
		action: "admin_bookings_status",
		parse: func(r *http.Request) (statusChange, map[string]string) {
			return statusChange{ID: ident.ID(r.PathValue("id")), Status: strings.TrimSpace(r.PostFormValue("status"))}, nil
		},
		submit: func(ctx context.Context, c statusChange) (string, error) {
			return "", h.Bookings.UpdateStatus(ctx, c.ID, c.Status)
		},
		success:  msgStatusUpdated,
		failure:  msgStatusUpdateFailed,
		returnTo: "/admin/bookings",
	})
}

// DeleteBooking serves POST /admin/bookings/{id}/delete.
func (h *UIHandlers) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Booking, struct{}, ident.ID]{
		res:      h.bookingsResource(),
		action:   "admin_bookings_delete",
		parse:    pathID,
		submit:   h.Bookings.Delete,
		success:  msgBookingDeleted,
		failure:  msgBookingDeleteFailed,
		returnTo: "/admin/bookings",
	})
}

// ---- users ----

func (h *UIHandlers) usersResource() adminResource[model.User, model.UserForm] {
	return adminResource[model.User, model.UserForm]{
		page:  PageAdminUsers,
		meta:  PageMeta{Title: "Kelola User - RevoBooking", PageTitle: "Kelola User", CurrentPage: PageAdminUsers},
		load:  h.Users.Load,
		idOf:  func(u model.User) ident.ID { return u.ID },
		toBuf: model.UserFormFrom,
	}
}

// AdminUsersPage serves GET /admin/users.
func (h *UIHandlers) AdminUsersPage(w http.ResponseWriter, r *http.Request) {
	renderAdminResource(h, w, r, h.usersResource(), nil)
}

// CreateUser serves POST /admin/users.
func (h *UIHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.User, model.UserForm, model.UserForm]{
		res:    h.usersResource(),
		action: "admin_users_create",
		parse:  parseUserForm,
		submit: func(ctx context.Context, f model.UserForm) (string, error) {
			return "", h.Users.Create(ctx, model.CreateUserRequest{
				Name:     f.Name,
				Email:    f.Email,
				Password: f.Password,
				Role:     auth.Role(f.Role),
			})
		},
		success:  msgUserCreated,
		failure:  msgUserCreateFailed,
		returnTo: "/admin/users",
	})
}

// UpdateUser serves POST /admin/users/{id}. Only non-empty fields are sent.
func (h *UIHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := ident.ID(r.PathValue("id"))
	handleAdminMutation(h, w, r, adminMutation[model.User, model.UserForm, model.UserForm]{
		res:    h.usersResource(),
		action: "admin_users_update",
		parse:  parseUserForm,
		submit: func(ctx context.Context, f model.UserForm) (string, error) {
			req, err := f.UpdateRequest()
			if err != nil {
				return "", err
			}
			return "", h.Users.Update(ctx, id, req)
		},
		success:  msgUserUpdated,
		failure:  msgUserUpdateFailed,
		returnTo: "/admin/users",
		editing:  true,
	})
}

func parseUserForm(r *http.Request) (model.UserForm, map[string]string) {
	f := model.UserForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
	fv := validation.New().Validate("email", f.Email, validation.Email("Email"))
	return f, fv.Errors()
}

// ChangeUserRole serves POST /admin/users/{id}/role.
func (h *UIHandlers) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	id := ident.ID(r.PathValue("id"))
	handleAdminMutation(h, w, r, adminMutation[model.User, model.UserForm, string]{
		res:    h.usersResource(),
		action: "admin_users_role",
		parse: func(r *http.Request) (string, map[string]string) {
			return strings.TrimSpace(r.PostFormValue("role")), nil
		},
		submit: func(ctx context.Context, role string) (string, error) {
			return "", h.Users.ChangeRole(ctx, id, role)
		},
		success:  msgRoleUpdated,
		failure:  msgRoleUpdateFailed,
		returnTo: "/admin/users",
	})
}

// DeleteUser serves POST /admin/users/{id}/delete. Administrator accounts are
// refused before any request is sent.
func (h *UIHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.User, model.UserForm, ident.ID]{
		res:      h.usersResource(),
		action:   "admin_users_delete",
		parse:    pathID,
		submit:   h.Users.Delete,
		success:  msgUserDeleted,
		failure:  msgUserDeleteFailed,
		returnTo: "/admin/users",
	})
}

// ---- destinations ----

func (h *UIHandlers) destinationsResource() adminResource[model.Destination, model.DestinationRequest] {
	return adminResource[model.Destination, model.DestinationRequest]{
		page:  PageAdminDestinations,
		meta:  PageMeta{Title: "Kelola Tujuan - RevoBooking", PageTitle: "Kelola Tujuan", CurrentPage: PageAdminDestinations},
		load:  h.Destinations.Load,
		idOf:  func(d model.Destination) ident.ID { return d.ID },
		toBuf: model.DestinationRequestFrom,
	}
}

// AdminDestinationsPage serves GET /admin/destinations.
func (h *UIHandlers) AdminDestinationsPage(w http.ResponseWriter, r *http.Request) {
	renderAdminResource(h, w, r, h.destinationsResource(), nil)
}

// CreateDestination serves POST /admin/destinations.
func (h *UIHandlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Destination, model.DestinationRequest, model.DestinationRequest]{
		res:    h.destinationsResource(),
		action: "admin_destinations_create",
		parse:  parseDestinationForm,
		submit: func(ctx context.Context, req model.DestinationRequest) (string, error) {
			return "", h.Destinations.Create(ctx, req)
		},
		success:  msgDestinationCreated,
		failure:  msgDestinationCreateErr,
		returnTo: "/admin/destinations",
	})
}

// UpdateDestination serves POST /admin/destinations/{id}.
func (h *UIHandlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id := ident.ID(r.PathValue("id"))
	handleAdminMutation(h, w, r, adminMutation[model.Destination, model.DestinationRequest, model.DestinationRequest]{
		res:    h.destinationsResource(),
		action: "admin_destinations_update",
		parse:  parseDestinationForm,
		submit: func(ctx context.Context, req model.DestinationRequest) (string, error) {
			return "", h.Destinations.Update(ctx, id, req)
		},
		success:  msgDestinationUpdated,
		failure:  msgDestinationUpdateErr,
		returnTo: "/admin/destinations",
		editing:  true,
	})
}

// DeleteDestination serves POST /admin/destinations/{id}/delete.
func (h *UIHandlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Destination, model.DestinationRequest, ident.ID]{
		res:      h.destinationsResource(),
		action:   "admin_destinations_delete",
		parse:    pathID,
		submit:   h.Destinations.Delete,
		success:  msgDestinationDeleted,
		failure:  msgDestinationDeleteErr,
		returnTo: "/admin/destinations",
	})
}

func parseDestinationForm(r *http.Request) (model.DestinationRequest, map[string]string) {
	req := model.DestinationRequest{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Image: strings.TrimSpace(r.PostFormValue("image")),
	}
	fv := validation.New().
		Validate("name", req.Name, validation.Optional("Nama tujuan", 200)).
		Validate("image", req.Image, validation.Optional("Gambar", 500))
	return req, fv.Errors()
}

// ---- aircraft ----

func (h *UIHandlers) aircraftResource() adminResource[model.Aircraft, model.AircraftRequest] {
	return adminResource[model.Aircraft, model.AircraftRequest]{
		page:  PageAdminAircraft,
		meta:  PageMeta{Title: "Kelola Pesawat - RevoBooking", PageTitle: "Kelola Pesawat", CurrentPage: PageAdminAircraft},
		load:  h.Aircraft.Load,
		idOf:  func(a model.Aircraft) ident.ID { return a.ID },
		toBuf: model.AircraftRequestFrom,
	}
}

// AdminAircraftPage serves GET /admin/aircrafts.
func (h *UIHandlers) AdminAircraftPage(w http.ResponseWriter, r *http.Request) {
	renderAdminResource(h, w, r, h.aircraftResource(), nil)
}

// CreateAircraft serves POST /admin/aircrafts.
func (h *UIHandlers) CreateAircraft(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Aircraft, model.AircraftRequest, model.AircraftRequest]{
		res:    h.aircraftResource(),
		action: "admin_aircrafts_create",
		parse:  parseAircraftForm,
		submit: func(ctx context.Context, req model.AircraftRequest) (string, error) {
			return "", h.Aircraft.Create(ctx, req)
		},
		success:  msgAircraftCreated,
		failure:  msgAircraftCreateErr,
		returnTo: "/admin/aircrafts",
	})
}

// UpdateAircraft serves POST /admin/aircrafts/{id}.
func (h *UIHandlers) UpdateAircraft(w http.ResponseWriter, r *http.Request) {
	id := ident.ID(r.PathValue("id"))
	handleAdminMutation(h, w, r, adminMutation[model.Aircraft, model.AircraftRequest, model.AircraftRequest]{
		res:    h.aircraftResource(),
		action: "admin_aircrafts_update",
		parse:  parseAircraftForm,
		submit: func(ctx context.Context, req model.AircraftRequest) (string, error) {
			return "", h.Aircraft.Update(ctx, id, req)
		},
		success:  msgAircraftUpdated,
		failure:  msgAircraftUpdateErr,
		returnTo: "/admin/aircrafts",
		editing:  true,
	})
}

// DeleteAircraft serves POST /admin/aircrafts/{id}/delete.
func (h *UIHandlers) DeleteAircraft(w http.ResponseWriter, r *http.Request) {
	handleAdminMutation(h, w, r, adminMutation[model.Aircraft, model.AircraftRequest, ident.ID]{
		res:      h.aircraftResource(),
		action:   "admin_aircrafts_delete",
		parse:    pathID,
		submit:   h.Aircraft.Delete,
		success:  msgAircraftDeleted,
		failure:  msgAircraftDeleteErr,
		returnTo: "/admin/aircrafts",
	})
}

func parseAircraftForm(r *http.Request) (model.AircraftRequest, map[string]string) {
	req := model.AircraftRequest{
		Name: strings.TrimSpace(r.PostFormValue("name")),
		Type: strings.TrimSpace(r.PostFormValue("type")),
	}
	fv := validation.New().
		Validate("name", req.Name, validation.Optional("Nama pesawat", 200)).
		Validate("type", req.Type, validation.Optional("Tipe", 100))
	return req, fv.Errors()
}
