// Package contactform is the client side of the contact form: field state,
// the submission lifecycle and the HTTP call to the server.
package contactform

import "time"

// State is the submission lifecycle of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Field names accepted by UpdateField.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields holds what the user typed.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	State  State
	Fields Fields
	Status string
}

// Status lines shown under the form.
const (
	StatusSent        = "Message sent successfully!"
	StatusSendFailed  = "Failed to send message."
	StatusUnknownFail = "An unknown error occurred."
)

// Auto-reset delays back to idle.
const (
	SuccessResetDelay = 4 * time.Second
	ErrorResetDelay   = 5 * time.Second
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. f must run on its own goroutine, never
// inside AfterFunc itself.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules with time.AfterFunc.
var RealClock Scheduler = clockScheduler{}
