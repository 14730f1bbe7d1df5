package session

import (
	"sync"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Control is the UI element that starts a request, typically a button.
type Control interface {
	SetEnabled(enabled bool)
	SetLabel(label string)
}

// Trigger guards one control so that only one request runs from it at a time.
// While held the control is disabled and shows a progress label.
type Trigger struct {
	control   Control
	idleLabel string

	mu   sync.Mutex
	busy bool
}

func NewTrigger(control Control, idleLabel string) *Trigger {
	return &Trigger{
		control:   control,
		idleLabel: idleLabel,
	}
}

// Acquire disables the control and shows progressLabel. The returned release
// restores the idle label and re-enables the control; calling it twice is harmless.
// ErrBusy is returned while a previous acquisition is still held.
func (t *Trigger) Acquire(progressLabel string) (func(), error) {
	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return nil, apperrors.ErrBusy
	}
	t.busy = true
	t.mu.Unlock()

	t.control.SetEnabled(false)
	t.control.SetLabel(progressLabel)

	var once sync.Once
	return func() {
		once.Do(func() {
			t.control.SetLabel(t.idleLabel)
			t.control.SetEnabled(true)

			t.mu.Lock()
			t.busy = false
			t.mu.Unlock()
		})
	}, nil
}

// Run holds the trigger for the duration of fn.
func (t *Trigger) Run(progressLabel string, fn func()) error {
	release, err := t.Acquire(progressLabel)
	if err != nil {
		return err
	}
	defer release()
	fn()
	return nil
}

func (t *Trigger) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Relabel changes the progress label of a held trigger.
func (t *Trigger) Relabel(label string) {
	if t.Busy() {
		t.control.SetLabel(label)
	}
}

// FollowStates returns an observer that relabels the control as the protected
// request flow moves between states.
func (t *Trigger) FollowStates(labels map[State]string) StateObserver {
	return func(s State) {
		if label, ok := labels[s]; ok {
			t.Relabel(label)
		}
	}
}

// FetchLabels are the progress labels used for the protected request.
var FetchLabels = map[State]string{
	StateRequesting: "Starting...",
	StateRetrying:   "Refreshing token...",
}
