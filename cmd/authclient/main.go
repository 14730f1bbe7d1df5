package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const usage = `usage: authclient [command] [flags]

commands:
  shell            interactive screens (default)
  register         -name -email -password [-confirm]
  login            -email -password
  reset-password   -email
  fetch            request the quiz, refreshing the session if needed
  status           show the stored session
  logout           forget the stored session`

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.New()
	logger := logging.Setup(cfg.GetLogLevel(), cfg.GetEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			fmt.Fprintln(os.Stderr, fe.Error())
		}
		logger.Debug().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	cmd := "shell"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open credentials: %w", err)
	}
	a, err := newApp(cfg, store, out, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation (defaults to -password)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "register":
		if *confirm == "" {
			*confirm = *password
		}
		return a.register(ctx, registerForm{Name: *name, Email: *email, Password: *password, Confirm: *confirm})
	case "login":
		return a.login(ctx, loginForm{Email: *email, Password: *password})
	case "reset-password":
		return a.resetPassword(ctx, resetForm{Email: *email})
	case "fetch":
		return a.fetch(ctx, a.fetcher)
	case "status":
		a.status(time.Now())
		return nil
	case "logout":
		a.logout()
		return nil
	case "shell":
		return runShell(ctx, cfg, a, in)
	default:
		fmt.Fprintln(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runShell(ctx context.Context, cfg config.Config, a *app, in io.Reader) error {
	displayAppname(a.out, cfg.GetAppName())

	if addr := cfg.GetMetricsAddr(); addr != "" {
		metrics := serveMetrics(a, addr)
		defer shutdown(metrics, a.log)
	}
	return newShell(a, in).run(ctx)
}

func serveMetrics(a *app, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info().Str("addr", addr).Msg("metrics listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return server
}

func shutdown(server *http.Server, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server.Shutdown")
	}
}

func displayAppname(out io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
