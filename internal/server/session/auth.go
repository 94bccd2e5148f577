package session

import (
	"context"

	"github.com/getcareer/portal/internal/server/users"
)

// AuthFlow drives the login/registration half of the state machine. The
// account service is its only side-effecting dependency; every method maps
// (state, event) to a new state.
type AuthFlow struct {
	users *users.Service
}

func NewAuthFlow(us *users.Service) *AuthFlow {
	return &AuthFlow{users: us}
}

// SubmitLogin verifies the credentials. On success the session becomes
// authenticated with the stored role and lands on Home. On failure the
// state is returned unchanged and the error carries the outward signal
// (common.ErrInvalidCredentials or common.ErrStoreUnavailable).
func (f *AuthFlow) SubmitLogin(ctx context.Context, st State, username, password string) (State, error) {
	user, err := f.users.Login(ctx, username, password)
	if err != nil {
		return st, err
	}

	st.Authenticated = true
	st.Username = user.Username
	st.Role = user.Role
	st.AuthMode = ""
	st.CurrentPage = PageHome
	return st, nil
}

// SubmitRegister creates a seeker account. On success the auth mode flips
// back to login; the session is deliberately not authenticated — the user
// logs in separately. On failure the state is unchanged and the error
// carries the reason (mismatch, too short, taken, store unavailable).
func (f *AuthFlow) SubmitRegister(ctx context.Context, st State, username, password, confirm string) (State, error) {
	if err := f.users.Register(ctx, username, password, confirm); err != nil {
		return st, err
	}

	st.AuthMode = ModeLogin
	return st, nil
}

// ToggleMode flips between the login and registration forms. No store
// interaction.
func (f *AuthFlow) ToggleMode(st State) State {
	if st.AuthMode == ModeRegister {
		st.AuthMode = ModeLogin
	} else {
		st.AuthMode = ModeRegister
	}
	return st
}
