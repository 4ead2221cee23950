package layout

import (
	"errors"
	"fmt"
)

// ErrorKind classifies layout failures
type ErrorKind string

const (
	KindInvalidParameter ErrorKind = "invalid_parameter"
	KindOverflow         ErrorKind = "overflow"
)

// Sentinel errors for errors.Is checks
var (
	ErrInvalidParameter = errors.New("invalid layout parameter")
	ErrOverflow         = errors.New("layout exceeds page bounds")
)

// Error describes a rejected layout request. Field names the offending input.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidParameter:
		return target == ErrInvalidParameter
	case KindOverflow:
		return target == ErrOverflow
	}
	return false
}

func invalidParam(field, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidParameter, Field: field, Message: fmt.Sprintf(format, args...)}
}

func overflow(field, format string, args ...interface{}) error {
	return &Error{Kind: KindOverflow, Field: field, Message: fmt.Sprintf(format, args...)}
}
