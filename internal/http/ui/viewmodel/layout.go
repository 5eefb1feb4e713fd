// Package viewmodel holds the shapes shared by the layout templates.
package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name  string
	Email string
	Role  string
}

// NavItem is one navbar link.
type NavItem struct {
	Label string
	Href  string
	Page  string
}

// Flash is a notification carried across a full-page redirect.
type Flash struct {
	Message string
	Type    string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
	Nav             []NavItem
	Flash           *Flash
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

// Navigation returns the navbar links. Administrators only get the console;
// everyone else gets the customer pages.
func Navigation(isAdmin bool) []NavItem {
	if isAdmin {
		return []NavItem{{Label: "Admin", Href: "/admin", Page: "admin"}}
	}
	return []NavItem{
		{Label: "Beranda", Href: "/", Page: "home"},
		{Label: "Booking", Href: "/booking", Page: "booking"},
		{Label: "Dashboard", Href: "/dashboard", Page: "dashboard"},
	}
}
