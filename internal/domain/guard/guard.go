// Package guard decides whether a screen may render for the current session state.
// It performs no I/O.
package guard

import "github.com/revobooking/revo-ui/internal/domain/auth"

// Requirement describes what a screen needs from the session.
type Requirement int

const (
	// RequireUser admits any authenticated identity.
	RequireUser Requirement = iota
	// RequireAdmin admits only administrators.
	RequireAdmin
)

// Decision is the outcome of evaluating a requirement.
type Decision int

const (
	// Undetermined means the session is still resolving; render nothing.
	Undetermined Decision = iota
	// Authorized means the screen may render.
	Authorized
	// RedirectLogin means no user is present.
	RedirectLogin
	// RedirectHome means a user is present but lacks the role.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "undetermined"
	}
}

// Evaluate maps a session state and a requirement to a decision.
func Evaluate(state auth.SessionState, req Requirement) Decision {
	switch {
	case state.Loading:
		return Undetermined
	case state.Identity == nil:
		return RedirectLogin
	case req == RequireAdmin && !state.Identity.IsAdmin():
		return RedirectHome
	default:
		return Authorized
	}
}
