// Package session models the per-session state of one portal user and the
// pure transitions over it. A State value is owned by a single logical
// session and threaded through the transition functions; nothing here is
// shared between sessions.
package session

import "github.com/getcareer/portal/internal/server/models"

// Mode is the unauthenticated screen: login form or registration form.
// It is meaningful only while the session is not authenticated.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Page is a seeker navigation target. It is meaningful only for an
// authenticated seeker; admins route to a single fixed view instead.
type Page string

const (
	PageHome       Page = "Home"
	PageSearchJobs Page = "SearchJobs"
	PageProfile    Page = "Profile"
)

// State is the full interaction context of one session.
type State struct {
	Authenticated bool        `json:"authenticated"`
	Username      string      `json:"username,omitempty"`
	Role          models.Role `json:"role,omitempty"`
	AuthMode      Mode        `json:"auth_mode,omitempty"`
	CurrentPage   Page        `json:"current_page,omitempty"`
	CVFileName    string      `json:"cv_file_name,omitempty"`
}

// NewState returns the initial session state: unauthenticated, login form,
// Home selected for after authentication.
func NewState() State {
	return State{
		Authenticated: false,
		AuthMode:      ModeLogin,
		CurrentPage:   PageHome,
	}
}

// Logout resets any state back to the initial default, regardless of role,
// page, or auth mode.
func Logout(State) State {
	return NewState()
}

// SelectPage sets the current page. The argument is drawn from the closed
// Page enum; values outside it are a programming error and are handled by
// the router's Home fallback rather than here.
func SelectPage(st State, p Page) State {
	st.CurrentPage = p
	return st
}

// WithCV records the stored CV file name. The name survives navigation and
// is dropped only on logout.
func WithCV(st State, storedName string) State {
	st.CVFileName = storedName
	return st
}
