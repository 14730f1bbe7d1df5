package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
)

const startLabel = "Start the quiz"

// shell is the interactive mode: one screen at a time, chosen by the navigator.
type shell struct {
	app     *app
	in      *bufio.Scanner
	out     io.Writer
	trigger *session.Trigger
	fetcher *session.Fetcher
	now     func() time.Time
}

func newShell(a *app, in io.Reader) *shell {
	trigger := session.NewTrigger(consoleControl{out: a.out}, startLabel)
	return &shell{
		app:     a,
		in:      bufio.NewScanner(in),
		out:     a.out,
		trigger: trigger,
		fetcher: session.NewFetcher(a.client, a.store, a.ctrl,
			session.WithFetcherLogger(a.log),
			session.WithStateObserver(trigger.FollowStates(session.FetchLabels)),
		),
		now: time.Now,
	}
}

func (s *shell) run(ctx context.Context) error {
	s.app.ctrl.Start()
	for {
		if ctx.Err() != nil {
			return nil
		}
		current, prefill := s.app.nav.Screen()
		switch current {
		case screenRegister:
			s.registerScreen(ctx)
		case screenLogin:
			s.loginScreen(ctx, prefill)
		case screenResetPassword:
			s.resetScreen(ctx)
		case screenHome:
			s.homeScreen(ctx)
		case screenQuit:
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}
	}
}

func (s *shell) registerScreen(ctx context.Context) {
	switch s.choose("[r]egister, [l]og in, [q]uit") {
	case "r":
		var form registerForm
		var ok bool
		if form.Name, ok = s.prompt("Name"); !ok {
			return
		}
		if form.Email, ok = s.prompt("Email"); !ok {
			return
		}
		if form.Password, ok = s.prompt("Password"); !ok {
			return
		}
		if form.Confirm, ok = s.prompt("Confirm password"); !ok {
			return
		}
		s.show(s.app.register(ctx, form))
	case "l":
		s.app.nav.NavigateToLogin("")
	case "q":
		s.app.nav.quit()
	}
}

func (s *shell) loginScreen(ctx context.Context, prefill string) {
	switch s.choose("[l]og in, [f]orgot password, [r]egister, [q]uit") {
	case "l":
		var form loginForm
		var ok bool
		label := "Email"
		if prefill != "" {
			label = fmt.Sprintf("Email [%s]", prefill)
		}
		if form.Email, ok = s.prompt(label); !ok {
			return
		}
		if form.Email == "" {
			form.Email = prefill
		}
		if form.Password, ok = s.prompt("Password"); !ok {
			return
		}
		s.show(s.app.login(ctx, form))
	case "f":
		s.app.nav.NavigateToResetPassword()
	case "r":
		s.app.nav.NavigateToRegister()
	case "q":
		s.app.nav.quit()
	}
}

func (s *shell) resetScreen(ctx context.Context) {
	email, ok := s.prompt("Email (blank to go back)")
	if !ok {
		return
	}
	if email == "" {
		s.app.nav.NavigateToLogin("")
		return
	}
	s.show(s.app.resetPassword(ctx, resetForm{Email: email}))
}

func (s *shell) homeScreen(ctx context.Context) {
	current := s.app.ctrl.Session()
	fmt.Fprintf(s.out, "Hello, %s\n", displayName(current.DisplayName))

	switch s.choose("[s]tart the quiz, [i]nfo, log [o]ut, [q]uit") {
	case "s":
		err := s.trigger.Run("Starting...", func() {
			_ = s.app.fetch(ctx, s.fetcher)
		})
		if apperrors.Is(err, apperrors.ErrBusy) {
			fmt.Fprintln(s.out, "A request is already running.")
		}
	case "i":
		s.app.status(s.now())
	case "o":
		s.app.logout()
	case "q":
		s.app.nav.quit()
	}
}

// choose shows the options and returns the first letter typed, lower-cased.
func (s *shell) choose(options string) string {
	answer, ok := s.prompt(options)
	if !ok || answer == "" {
		return ""
	}
	return strings.ToLower(answer[:1])
}

// prompt reads one line. On end of input it switches to the quit screen and
// returns false.
func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		s.app.nav.quit()
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) show(err error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		for _, field := range []string{"Name", "Email", "Password", "Confirm"} {
			if msg, ok := fe[field]; ok {
				fmt.Fprintf(s.out, "  ! %s\n", msg)
			}
		}
	}
}
