package sequence

import (
	"errors"
	"fmt"

	"github.com/jsphweid/capo/chord"
)

// Reason classifies a SequenceError.
type Reason string

const (
	ReasonFormat        Reason = "format"
	ReasonRange         Reason = "range"
	ReasonInvalidRoot   Reason = "invalid_root"
	ReasonInvalidType   Reason = "invalid_type"
	ReasonIndex         Reason = "index"
	ReasonTransposition Reason = "transposition"
)

// SequenceError is the only error kind returned by Sequence operations. Err
// keeps the underlying cause, so errors.Is(err, chord.ErrInvalidRoot) works.
type SequenceError struct {
	Op     string
	Reason Reason
	Err    error
}

func (e *SequenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("sequence %s: %s", e.Op, e.Reason)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *SequenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsReason(err error, reason Reason) bool {
	var se *SequenceError
	if errors.As(err, &se) {
		return se.Reason == reason
	}
	return false
}

func wrapChordError(op string, err error) error {
	reason := ReasonFormat
	switch {
	case errors.Is(err, chord.ErrRange):
		reason = ReasonRange
	case errors.Is(err, chord.ErrInvalidRoot):
		reason = ReasonInvalidRoot
	case errors.Is(err, chord.ErrInvalidType):
		reason = ReasonInvalidType
	}
	return &SequenceError{Op: op, Reason: reason, Err: err}
}
