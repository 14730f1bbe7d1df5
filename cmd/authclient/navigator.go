package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/jrsteele09/go-auth-client/session"
)

type screen int

const (
	screenRegister screen = iota
	screenLogin
	screenResetPassword
	screenHome
	screenQuit
)

var screenTitles = map[screen]string{
	screenRegister:      "Create account",
	screenLogin:         "Log in",
	screenResetPassword: "Reset password",
	screenHome:          "Quiz",
}

// terminalNavigator records which screen the shell shows next.
type terminalNavigator struct {
	out io.Writer

	lock    sync.Mutex
	current screen
	prefill string
}

var _ session.Navigator = (*terminalNavigator)(nil)

func newTerminalNavigator(out io.Writer) *terminalNavigator {
	return &terminalNavigator{out: out, current: screenRegister}
}

func (n *terminalNavigator) NavigateToLogin(prefillEmail string) {
	n.show(screenLogin, prefillEmail)
}

func (n *terminalNavigator) NavigateToRegister() {
	n.show(screenRegister, "")
}

func (n *terminalNavigator) NavigateToResetPassword() {
	n.show(screenResetPassword, "")
}

func (n *terminalNavigator) NavigateToHome() {
	n.show(screenHome, "")
}

func (n *terminalNavigator) quit() {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.current = screenQuit
}

// Screen returns the current screen and the email to prefill on it.
func (n *terminalNavigator) Screen() (screen, string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.current, n.prefill
}

func (n *terminalNavigator) show(s screen, prefill string) {
	n.lock.Lock()
	n.current = s
	n.prefill = prefill
	n.lock.Unlock()

	fmt.Fprintf(n.out, "\n== %s ==\n", screenTitles[s])
}

// consoleControl is the terminal stand-in for the start button.
type consoleControl struct {
	out io.Writer
}

var _ session.Control = consoleControl{}

func (c consoleControl) SetEnabled(bool) {}

func (c consoleControl) SetLabel(label string) {
	fmt.Fprintf(c.out, "[%s]\n", label)
}
