package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Public pages.
	PageHome     = "home"
	PageLogin    = "login"
	PageRegister = "register"
	PageBooking  = "booking"

	// Customer pages.
	PageCheckout  = "checkout"
	PageDashboard = "dashboard"

	// Admin console pages.
	PageAdmin             = "admin"
	PageAdminServices     = "admin-services"
	PageAdminBookings     = "admin-bookings"
	PageAdminUsers        = "admin-users"
	PageAdminDestinations = "admin-destinations"
	PageAdminAircraft     = "admin-aircrafts"
)

const (
	// HomePreviewLimit is how many services the home page previews.
	HomePreviewLimit = 6
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:              "home-content",
	PageLogin:             "login-content",
	PageRegister:          "register-content",
	PageBooking:           "booking-content",
	PageCheckout:          "checkout-content",
	PageDashboard:         "dashboard-content",
	PageAdmin:             "admin-content",
	PageAdminServices:     "admin-services-content",
	PageAdminBookings:     "admin-bookings-content",
	PageAdminUsers:        "admin-users-content",
	PageAdminDestinations: "admin-destinations-content",
	PageAdminAircraft:     "admin-aircrafts-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
