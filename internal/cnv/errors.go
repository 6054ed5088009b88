package cnv

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification; *Error matches them with errors.Is.
var (
	ErrMalformedCoordinate = errors.New("malformed coordinate")
	ErrInvalidRange        = errors.New("invalid range")
	ErrInvalidEventType    = errors.New("invalid event type")
)

// ErrorKind categorizes annotation failures.
type ErrorKind string

const (
	KindMalformedCoordinate ErrorKind = "malformed_coordinate"
	KindInvalidRange        ErrorKind = "invalid_range"
	KindInvalidEventType    ErrorKind = "invalid_event_type"
)

// Error is a typed annotation failure carrying the offending input.
type Error struct {
	Kind  ErrorKind
	Input string // offending coordinate text or event type
	Start int64  // set for KindInvalidRange
	End   int64  // set for KindInvalidRange
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMalformedCoordinate:
		return fmt.Sprintf("malformed coordinate %q", e.Input)
	case KindInvalidRange:
		return fmt.Sprintf("invalid range in %q: start %d must be less than end %d", e.Input, e.Start, e.End)
	case KindInvalidEventType:
		return fmt.Sprintf("invalid event type %q", e.Input)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindMalformedCoordinate:
		return target == ErrMalformedCoordinate
	case KindInvalidRange:
		return target == ErrInvalidRange
	case KindInvalidEventType:
		return target == ErrInvalidEventType
	}
	return false
}

// IsKind helps callers classify errors without a type assertion.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Message renders err as text for someone at the lookup form.
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("Annotation failed: %v", err)
	}
	switch e.Kind {
	case KindMalformedCoordinate:
		return fmt.Sprintf("Invalid coordinate %q. Expected a form like chr16:15489724-16367962.", e.Input)
	case KindInvalidRange:
		return fmt.Sprintf("Start position (%d) must be less than end position (%d).", e.Start, e.End)
	case KindInvalidEventType:
		return fmt.Sprintf("Invalid event type %q. Use 'duplication' or 'deletion'.", e.Input)
	}
	return e.Error()
}
