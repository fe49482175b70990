package analyze

import (
	"time"

	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/Iron-Ham/copyguard/internal/errors"
)

// State is the lifecycle state of the form.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Outcome is the result of the most recent completed request.
type Outcome struct {
	State State
	// Result is set when State is StateSuccess.
	Result *detector.Result
	// Message is the user-facing error text when State is StateError.
	Message string
	// Err is the classified error when State is StateError.
	Err error
	// Kind is the taxonomy class of Err.
	Kind errors.Kind

	RequestID   string
	CompletedAt time.Time
	Duration    time.Duration

	// Rendered panel contents, as last written to the port.
	LabelText      string
	ConfidenceText string
	Confidence     float64
	RawText        string
}
