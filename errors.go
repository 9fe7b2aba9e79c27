package ssmenv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented is returned when a fetcher or naming strategy has no
	// implementation behind it.
	ErrNotImplemented = errors.New("not implemented")
)

// An ArgumentError is returned when the configuration passed to a factory is
// missing a required option or holds a value of the wrong kind. It is always
// returned before any request is made to Parameter Store.
type ArgumentError struct {
	Option string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Option, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func argumentError(option, format string, args ...interface{}) error {
	return &ArgumentError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

// A NotFoundError is returned when one or more tagged fields of a struct scope
// were not set by any parameter.
type NotFoundError struct {
	names []string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found: %v", strings.Join(e.names, ", "))
}

// Names returns the keys that were not found.
func (e NotFoundError) Names() []string {
	return e.names
}
