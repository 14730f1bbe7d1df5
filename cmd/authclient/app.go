package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/credentials"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

// app wires the client components for one invocation of the command.
type app struct {
	client   *api.Client
	store    credentials.Store
	nav      *terminalNavigator
	ctrl     *session.Controller
	fetcher  *session.Fetcher
	registry *prometheus.Registry
	out      io.Writer
	log      zerolog.Logger
}

func newApp(cfg config.Config, store credentials.Store, out io.Writer, logger zerolog.Logger, opts ...api.Option) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	opts = append([]api.Option{
		api.WithMetrics(api.NewMetrics(registry)),
		api.WithLogger(logger),
	}, opts...)
	client, err := api.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("api.New: %w", err)
	}

	nav := newTerminalNavigator(out)
	ctrl := session.NewController(client, store, nav, session.WithControllerLogger(logger))
	return &app{
		client:   client,
		store:    store,
		nav:      nav,
		ctrl:     ctrl,
		fetcher:  session.NewFetcher(client, store, ctrl, session.WithFetcherLogger(logger)),
		registry: registry,
		out:      out,
		log:      logger,
	}, nil
}

// openStore opens the configured credentials file, sealed when a secret is set.
func openStore(cfg config.StorageConfig, logger zerolog.Logger) (*credentials.FileStore, error) {
	opts := []credentials.FileStoreOption{credentials.WithLogger(logger)}
	if secret := cfg.GetCredentialsSecret(); secret != "" {
		sealer, err := credentials.NewSealer(secret)
		if err != nil {
			return nil, err
		}
		opts = append(opts, credentials.WithSealer(sealer))
	}
	return credentials.NewFileStore(cfg.GetCredentialsFile(), opts...)
}

func (a *app) Close() {
	a.client.Close()
}

func (a *app) register(ctx context.Context, form registerForm) error {
	if err := validateForm(&form); err != nil {
		return err
	}
	return a.report(a.ctrl.Register(ctx, form.Email, form.Password, form.Name))
}

func (a *app) login(ctx context.Context, form loginForm) error {
	if err := validateForm(&form); err != nil {
		return err
	}
	return a.report(a.ctrl.Authenticate(ctx, form.Email, form.Password))
}

func (a *app) resetPassword(ctx context.Context, form resetForm) error {
	if err := validateForm(&form); err != nil {
		return err
	}
	return a.report(a.ctrl.ResetPassword(ctx, form.Email))
}

func (a *app) logout() {
	a.ctrl.Logout()
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *app) fetch(ctx context.Context, fetcher *session.Fetcher) error {
	data, err := fetcher.Fetch(ctx)
	if err != nil {
		var fe *session.FetchError
		if errors.As(err, &fe) {
			fmt.Fprintln(a.out, fe.Message)
		}
		return err
	}
	fmt.Fprintln(a.out, data)
	return nil
}

// status prints the stored identity and what the access token says about itself.
func (a *app) status(now time.Time) {
	s := a.ctrl.Session()
	if !s.HasTokens() {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", displayName(s.DisplayName), s.Email)

	claims, err := token.Inspect(s.AccessToken)
	switch {
	case err != nil:
		fmt.Fprintln(a.out, "Access token: opaque")
	case !claims.HasExpiry():
		fmt.Fprintln(a.out, "Access token: no expiry")
	case claims.Expired(now):
		fmt.Fprintf(a.out, "Access token: expired %s ago (refreshed on next request)\n", (-claims.ExpiresIn(now)).Round(time.Second))
	default:
		fmt.Fprintf(a.out, "Access token: expires in %s\n", claims.ExpiresIn(now).Round(time.Second))
	}
}

// report prints an outcome and turns a failed one into an error for the exit code.
func (a *app) report(o session.Outcome) error {
	if o.FieldError != "" {
		fmt.Fprintf(a.out, "  ! %s\n", o.FieldError)
	}
	if o.Message != "" {
		fmt.Fprintln(a.out, o.Message)
	}
	if !o.Succeeded() {
		return fmt.Errorf("%s", o.Kind)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
