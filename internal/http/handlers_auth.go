package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/http/validation"
)

const (
	msgLoginSuccess    = "Login berhasil!"
	msgLoginFailed     = "Login gagal! Periksa email dan password Anda."
	msgRegisterSuccess = "Registrasi berhasil! Silakan login untuk melanjutkan."
	msgRegisterFailed  = "Registrasi gagal! Email mungkin sudah terdaftar."
	msgLoggedOut       = "Anda telah keluar."

	minPasswordLength = 6
)

// loginForm is the submitted login form. The password is never echoed back.
type loginForm struct {
	Email    string
	Redirect string
}

// registerForm is the submitted registration form without passwords.
type registerForm struct {
	Name  string
	Email string
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Masuk - RevoBooking", PageTitle: "Masuk ke Akun", CurrentPage: PageLogin}
}

func registerMeta() PageMeta {
	return PageMeta{Title: "Daftar - RevoBooking", PageTitle: "Buat Akun", CurrentPage: PageRegister}
}

// LoginPage serves GET /login. Signed-in visitors are sent to their landing page.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	state := SessionStateFromContext(r.Context())
	if state.IsAuthenticated() {
		redirect(w, r, landingFor(*state.Identity, r.URL.Query().Get("redirect")))
		return
	}

	data := NewTemplateData(r, loginMeta()).
		With("Form", loginForm{Redirect: safeRedirectParam(r.URL.Query().Get("redirect"))}).
		Build()
	h.renderPage(w, r, data)
}

// Login serves POST /login: exchange credentials, bind the new session, go to the role's landing page.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Redirect: safeRedirectParam(r.PostFormValue("redirect")),
	}
	req := model.LoginRequest{Email: form.Email, Password: r.PostFormValue("password")}

	res, err := h.Sessions.Login(r.Context(), req, SessionIDFromContext(r.Context()))
	h.observe("login", err)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "error", err)
		h.failForm(w, r, msgLoginFailed, loginMeta(), form)
		return
	}

	h.Cookies.setSession(w, r, res.Session.ID, res.Session.ExpiresAt)
	// The flash must land on the new session, which is not in this request's context yet.
	ctx := withRequestSession(r.Context(), res.Session.ID, domainauth.SessionState{Identity: &res.Identity})
	h.notifyAndRedirect(w, r.WithContext(ctx), msgLoginSuccess, ToastSuccess, landingFor(res.Identity, form.Redirect))
}

// RegisterPage serves GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, registerMeta()).With("Form", registerForm{}).Build()
	h.renderPage(w, r, data)
}

// Register serves POST /register.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[model.RegisterRequest]{
		W:      w,
		R:      r,
		Action: "register",
		Parser: parseRegisterForm,
		Submit: func(ctx context.Context, req model.RegisterRequest) (string, error) {
			return "", h.Sessions.Register(ctx, req)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			if req, ok := data["Form"].(model.RegisterRequest); ok {
				data["Form"] = registerForm{Name: req.Name, Email: req.Email}
			}
			h.renderPage(w, r, data)
		},
		PageMeta:          registerMeta(),
		SuccessMessage:    msgRegisterSuccess,
		FailureMessage:    msgRegisterFailed,
		SuccessURL:        "/login",
		RedirectOnSuccess: true,
	})
}

// Logout serves POST /logout. The session and its token are discarded locally; no API call is made.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sid := SessionIDFromContext(r.Context())
	if err := h.Sessions.Logout(r.Context(), sid); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	h.Cookies.clearSession(w, r)
	h.observe("logout", nil)

	ctx := withRequestSession(r.Context(), "", domainauth.SessionState{})
	h.notifyAndRedirect(w, r.WithContext(ctx), msgLoggedOut, ToastInfo, "/")
}

// parseRegisterForm runs the local checks in the order users expect to see them:
// confirmation mismatch first, then the password length.
func parseRegisterForm(r *http.Request) (model.RegisterRequest, map[string]string) {
	req := model.RegisterRequest{
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	if req.Password != req.ConfirmPassword {
		return req, map[string]string{"confirmPassword": "Password dan konfirmasi password tidak cocok!"}
	}
	fv := validation.New().Validate("password", req.Password, validation.MinLength("Password", minPasswordLength))
	if len(fv.Errors()) > 0 {
		return req, fv.Errors()
	}
	fv = validation.New().
		Validate("name", req.Name, validation.Required("Nama", 100)).
		Validate("email", req.Email, validation.Required("Email", 254), validation.Email("Email"))
	return req, fv.Errors()
}

// failForm answers a failed hand-rolled form with a fixed message: an error
// toast for htmx, the page with the message otherwise.
func (h *UIHandlers) failForm(w http.ResponseWriter, r *http.Request, message string, meta PageMeta, form any) {
	if IsHTMX(r) {
		rejectAction(w, message)
		return
	}
	RenderError(ErrorOpts{
		W:        w,
		R:        r,
		Err:      apperrors.Validation(message),
		Fallback: message,
		Render:   h.renderPage,
		PageMeta: meta,
		Data:     map[string]any{"Form": form},
	})
}

// landingFor picks where a freshly signed-in identity goes. Administrators
// always land on the console; customers honor a safe redirect target.
func landingFor(identity domainauth.Identity, redirectParam string) string {
	if identity.IsAdmin() {
		return "/admin"
	}
	if target := safeRedirectParam(redirectParam); target != "" {
		return target
	}
	return "/dashboard"
}

// safeRedirectParam returns candidate when it is an in-app path other than the
// login and register pages, else "".
func safeRedirectParam(candidate string) string {
	if strings.TrimSpace(candidate) == "" {
		return ""
	}
	target := safeRedirectPath(candidate)
	if target == "/" {
		return ""
	}
	if strings.HasPrefix(target, "/login") || strings.HasPrefix(target, "/register") {
		return ""
	}
	return target
}

// safeRedirectPath returns candidate if it is a relative in-app path, "/" otherwise.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}
