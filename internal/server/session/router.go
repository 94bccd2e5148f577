package session

import "github.com/getcareer/portal/internal/server/models"

// ViewKind selects one of the three view trees.
type ViewKind string

const (
	ViewAuth   ViewKind = "auth"
	ViewAdmin  ViewKind = "admin"
	ViewSeeker ViewKind = "seeker"
)

// ViewSelector tells the rendering layer what to draw next. AuthMode is set
// only for ViewAuth, Page only for ViewSeeker.
type ViewSelector struct {
	Kind     ViewKind `json:"kind"`
	AuthMode Mode     `json:"auth_mode,omitempty"`
	Page     Page     `json:"page,omitempty"`
}

// Route maps any session state to exactly one view selector. It is total:
// states reachable only through a bug still resolve, with unknown pages
// and auth modes falling back to Home and the login form.
func Route(st State) ViewSelector {
	if !st.Authenticated {
		mode := st.AuthMode
		if mode != ModeLogin && mode != ModeRegister {
			mode = ModeLogin
		}
		return ViewSelector{Kind: ViewAuth, AuthMode: mode}
	}

	if st.Role == models.RoleAdmin {
		return ViewSelector{Kind: ViewAdmin}
	}

	page := st.CurrentPage
	switch page {
	case PageHome, PageSearchJobs, PageProfile:
	default:
		page = PageHome
	}
	return ViewSelector{Kind: ViewSeeker, Page: page}
}
