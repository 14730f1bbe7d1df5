package session

import (
	"context"

	"github.com/jrsteele09/go-auth-client/api"
)

// Navigator is implemented by whatever hosts the screens. The session flows
// only decide where to go; the host decides how.
type Navigator interface {
	// NavigateToLogin shows the login screen, prefilled with email when not empty.
	NavigateToLogin(prefillEmail string)
	// NavigateToRegister shows the entry screen.
	NavigateToRegister()
	NavigateToResetPassword()
	// NavigateToHome shows the authenticated view.
	NavigateToHome()
}

// Gateway is the subset of *api.Client the flows depend on. Every error it
// returns must be an *api.Error.
type Gateway interface {
	SignUp(ctx context.Context, email, password, displayName string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Refresh(ctx context.Context, email, refreshToken string) (*api.AuthResponse, error)
	FetchProtectedResource(ctx context.Context, accessToken string) (string, error)
}

// Reachability is the network precheck run before sign-up, login and reset.
type Reachability interface {
	Reachable(ctx context.Context) bool
}

// Logouter ends the session and returns the user to the entry screen.
type Logouter interface {
	Logout()
}

var _ Gateway = (*api.Client)(nil)
var _ Reachability = (*api.Client)(nil)

type alwaysReachable struct{}

func (alwaysReachable) Reachable(context.Context) bool { return true }
