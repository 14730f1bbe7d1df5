package session

import "github.com/jrsteele09/go-auth-client/api"

type OutcomeKind int

const (
	OutcomeProceedToLogin OutcomeKind = iota
	OutcomeProceedToHome
	OutcomeResetRequested
	OutcomeOffline
	OutcomeAccountExists
	OutcomeInvalidCredentials
	OutcomeFailed
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeProceedToLogin:     "proceed_to_login",
	OutcomeProceedToHome:      "proceed_to_home",
	OutcomeResetRequested:     "reset_requested",
	OutcomeOffline:            "offline",
	OutcomeAccountExists:      "account_exists",
	OutcomeInvalidCredentials: "invalid_credentials",
	OutcomeFailed:             "failed",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Outcome is the result of a user action handed back to the screen.
type Outcome struct {
	Kind OutcomeKind
	// Category and Code are set for outcomes caused by a gateway error.
	Category api.Category
	Code     int
	// Message is shown to the user as a transient notice.
	Message string
	// FieldError, when set, belongs next to the offending input.
	FieldError string
	// Email is the address to prefill on the next screen.
	Email string
}

func (o Outcome) Succeeded() bool {
	switch o.Kind {
	case OutcomeProceedToLogin, OutcomeProceedToHome, OutcomeResetRequested:
		return true
	default:
		return false
	}
}

const (
	OfflineMessage         = "No internet connection. Please check your network connection and try again."
	EmailRegisteredMessage = "Email already registered"
	InvalidLoginMessage    = "Invalid email or password"
	SaveFailedMessage      = "Could not save your session. Please try again."
)

func errorOutcome(kind OutcomeKind, err error) Outcome {
	o := Outcome{
		Kind:     kind,
		Category: api.Categorize(err),
		Message:  api.UserMessage(err),
	}
	if apiErr, ok := api.AsError(err); ok {
		o.Code = apiErr.Code
	}
	return o
}
