package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/credentials"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type FailureReason int

const (
	// ReasonRequestFailed: the protected call failed and the session is kept.
	ReasonRequestFailed FailureReason = iota
	// ReasonMissingCredential: a token or the email was not stored; the session was ended.
	ReasonMissingCredential
	// ReasonSessionExpired: the refresh was refused; the session was ended.
	ReasonSessionExpired
)

func (r FailureReason) String() string {
	switch r {
	case ReasonRequestFailed:
		return "request failed"
	case ReasonMissingCredential:
		return "missing credential"
	case ReasonSessionExpired:
		return "session expired"
	default:
		return "unknown"
	}
}

const (
	MissingAccessTokenMessage  = "Access token is missing"
	MissingRefreshTokenMessage = "Cannot refresh token"
	SessionExpiredMessage      = "Session expired. Please login again."
)

// FetchError is returned by Fetcher.Fetch. It unwraps to ErrMissingCredential,
// ErrSessionExpired or the gateway's *api.Error.
type FetchError struct {
	Reason   FailureReason
	Category api.Category
	Code     int
	Message  string
	cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("protected request %s: %v", e.Reason, e.cause)
}

func (e *FetchError) Unwrap() error {
	return e.cause
}

// LoggedOut reports whether the flow ended the session.
func (e *FetchError) LoggedOut() bool {
	return e.Reason != ReasonRequestFailed
}

// Fetcher performs the protected request. On a 401 it refreshes the session
// once and retries once; a failed refresh ends the session.
type Fetcher struct {
	gateway  Gateway
	store    credentials.Store
	sessions Logouter
	observer StateObserver
	log      zerolog.Logger

	mu    sync.Mutex
	state State
}

type FetcherOption func(*Fetcher)

func WithStateObserver(o StateObserver) FetcherOption {
	return func(f *Fetcher) {
		f.observer = o
	}
}

func WithFetcherLogger(l zerolog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = l
	}
}

func NewFetcher(gateway Gateway, store credentials.Store, sessions Logouter, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		gateway:  gateway,
		store:    store,
		sessions: sessions,
		log:      log.Logger,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the state reached by the most recent Fetch.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fetch returns the protected payload or a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	f.transition(StateRequesting)

	current, err := f.store.Read()
	if err != nil {
		return "", f.endSession(&FetchError{
			Reason:   ReasonMissingCredential,
			Category: api.CategoryAuthExpired,
			Message:  MissingAccessTokenMessage,
			cause:    fmt.Errorf("%w: %w", apperrors.ErrMissingCredential, err),
		})
	}
	if current.AccessToken == "" {
		return "", f.endSession(&FetchError{
			Reason:   ReasonMissingCredential,
			Category: api.CategoryAuthExpired,
			Message:  MissingAccessTokenMessage,
			cause:    apperrors.ErrMissingCredential,
		})
	}

	accessToken := current.AccessToken
	refreshed := false
	for {
		data, err := f.gateway.FetchProtectedResource(ctx, accessToken)
		if err == nil {
			f.transition(StateSucceeded)
			return data, nil
		}

		apiErr, ok := api.AsError(err)
		// Only one refresh per attempt; a 401 after it is final.
		if !ok || !apiErr.IsUnauthorized() || refreshed {
			f.log.Info().Err(err).Bool("after_refresh", refreshed).Msg("protected request failed")
			return "", f.fail(&FetchError{
				Reason:   ReasonRequestFailed,
				Category: api.Categorize(err),
				Code:     codeOf(apiErr),
				Message:  api.UserMessage(err),
				cause:    err,
			})
		}

		f.transition(StateRetrying)
		accessToken, err = f.refresh(ctx)
		if err != nil {
			return "", err
		}
		refreshed = true
		f.transition(StateRequesting)
	}
}

// refresh swaps the stored session for a refreshed one and returns the new
// access token. Any failure ends the session.
func (f *Fetcher) refresh(ctx context.Context) (string, error) {
	current, err := f.store.Read()
	if err != nil || current.RefreshToken == "" || current.Email == "" {
		cause := apperrors.ErrMissingCredential
		if err != nil {
			cause = fmt.Errorf("%w: %w", apperrors.ErrMissingCredential, err)
		}
		return "", f.endSession(&FetchError{
			Reason:   ReasonMissingCredential,
			Category: api.CategoryAuthExpired,
			Message:  MissingRefreshTokenMessage,
			cause:    cause,
		})
	}

	auth, err := f.gateway.Refresh(ctx, current.Email, current.RefreshToken)
	if err != nil {
		f.log.Info().Err(err).Msg("token refresh refused")
		apiErr, _ := api.AsError(err)
		return "", f.endSession(&FetchError{
			Reason:   ReasonSessionExpired,
			Category: api.Categorize(err),
			Code:     codeOf(apiErr),
			Message:  SessionExpiredMessage,
			cause:    fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, err),
		})
	}

	if err := f.store.Save(auth.Session()); err != nil {
		f.log.Error().Err(err).Msg("failed to persist refreshed session")
		return "", f.endSession(&FetchError{
			Reason:   ReasonSessionExpired,
			Category: api.CategoryUnknown,
			Message:  SessionExpiredMessage,
			cause:    fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, err),
		})
	}
	f.log.Debug().Msg("session refreshed, retrying protected request")
	return auth.AccessToken, nil
}

// endSession clears the credentials, triggers logout and fails the attempt.
func (f *Fetcher) endSession(e *FetchError) error {
	if err := f.store.Clear(); err != nil {
		f.log.Error().Err(err).Msg("failed to clear credentials")
	}
	if f.sessions != nil {
		f.sessions.Logout()
	}
	return f.fail(e)
}

func (f *Fetcher) fail(e *FetchError) error {
	f.transition(StateFailed)
	return e
}

func (f *Fetcher) transition(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()

	if f.observer != nil {
		f.observer(s)
	}
}

func codeOf(e *api.Error) int {
	if e == nil {
		return 0
	}
	return e.Code
}
