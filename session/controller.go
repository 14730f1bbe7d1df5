package session

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/credentials"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Controller runs the sign-up, login, reset and logout actions and decides
// where the user goes next.
type Controller struct {
	gateway Gateway
	store   credentials.Store
	nav     Navigator
	reach   Reachability
	log     zerolog.Logger
}

type ControllerOption func(*Controller)

func WithReachability(r Reachability) ControllerOption {
	return func(c *Controller) {
		c.reach = r
	}
}

func WithControllerLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = l
	}
}

// NewController wires the flows. When the gateway can probe reachability it is
// used for the network precheck unless WithReachability overrides it.
func NewController(gateway Gateway, store credentials.Store, nav Navigator, opts ...ControllerOption) *Controller {
	c := &Controller{
		gateway: gateway,
		store:   store,
		nav:     nav,
		reach:   alwaysReachable{},
		log:     log.Logger,
	}
	if r, ok := gateway.(Reachability); ok {
		c.reach = r
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start routes to the authenticated view when a session is stored, otherwise
// to the entry screen. It reports whether the user is logged in.
func (c *Controller) Start() bool {
	if c.store.IsLoggedIn() {
		c.nav.NavigateToHome()
		return true
	}
	c.nav.NavigateToRegister()
	return false
}

func (c *Controller) Register(ctx context.Context, email, password, displayName string) Outcome {
	if !c.reach.Reachable(ctx) {
		return Outcome{Kind: OutcomeOffline, Category: api.CategoryTransportFailure, Message: OfflineMessage}
	}

	auth, err := c.gateway.SignUp(ctx, email, password, displayName)
	if err != nil {
		c.log.Info().Err(err).Str("category", api.Categorize(err).String()).Msg("sign up failed")
		if api.Categorize(err) == api.CategoryAccountExists {
			o := errorOutcome(OutcomeAccountExists, err)
			o.FieldError = EmailRegisteredMessage
			return o
		}
		return errorOutcome(OutcomeFailed, err)
	}

	if o, ok := c.persist(auth); !ok {
		return o
	}
	c.log.Info().Msg("sign up succeeded")
	c.nav.NavigateToLogin(auth.Email)
	return Outcome{Kind: OutcomeProceedToLogin, Email: auth.Email, Message: "Registration successful. Please log in."}
}

func (c *Controller) Authenticate(ctx context.Context, email, password string) Outcome {
	if !c.reach.Reachable(ctx) {
		return Outcome{Kind: OutcomeOffline, Category: api.CategoryTransportFailure, Message: OfflineMessage}
	}

	auth, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		c.log.Info().Err(err).Str("category", api.Categorize(err).String()).Msg("login failed")
		if api.Categorize(err) == api.CategoryInvalidCredentials {
			o := errorOutcome(OutcomeInvalidCredentials, err)
			o.FieldError = InvalidLoginMessage
			return o
		}
		return errorOutcome(OutcomeFailed, err)
	}

	if o, ok := c.persist(auth); !ok {
		return o
	}
	c.log.Info().Msg("login succeeded")
	c.nav.NavigateToHome()
	return Outcome{Kind: OutcomeProceedToHome, Email: auth.Email, Message: fmt.Sprintf("Welcome back, %s!", displayName(auth.DisplayName))}
}

// ResetPassword only acknowledges the request locally; the API has no reset endpoint.
func (c *Controller) ResetPassword(ctx context.Context, email string) Outcome {
	if !c.reach.Reachable(ctx) {
		return Outcome{Kind: OutcomeOffline, Category: api.CategoryTransportFailure, Message: OfflineMessage}
	}
	c.nav.NavigateToLogin(email)
	return Outcome{
		Kind:    OutcomeResetRequested,
		Email:   email,
		Message: fmt.Sprintf("Password reset email sent to %s\nPlease check your inbox.", email),
	}
}

// Logout clears the stored session and returns to the entry screen. It never fails.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credentials on logout")
	}
	c.nav.NavigateToRegister()
}

// Session returns the stored session, or the zero Session when none is available.
func (c *Controller) Session() credentials.Session {
	s, err := c.store.Read()
	if err != nil {
		c.log.Error().Err(err).Msg("failed to read credentials")
		return credentials.Session{}
	}
	return s
}

func (c *Controller) persist(auth *api.AuthResponse) (Outcome, bool) {
	if err := c.store.Save(auth.Session()); err != nil {
		c.log.Error().Err(err).Msg("failed to persist session")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.log.Error().Err(clearErr).Msg("failed to clear credentials after save failure")
		}
		return Outcome{Kind: OutcomeFailed, Category: api.CategoryUnknown, Message: SaveFailedMessage}, false
	}
	return Outcome{}, true
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
