package services

import "fmt"

// ErrorKind classifies a guard failure. The vocabulary is deliberately small:
// every precondition a service checks maps to exactly one of these.
type ErrorKind int

const (
	KindConflict ErrorKind = iota
	KindNotFound
	KindNotAcceptable
)

// StatusError is a service-level precondition failure. Handlers translate the
// kind into an HTTP status; everything else bubbles up as a plain error and
// becomes a 500.
type StatusError struct {
	Kind    ErrorKind
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func conflictf(format string, args ...interface{}) error {
	return &StatusError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return &StatusError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func notAcceptablef(format string, args ...interface{}) error {
	return &StatusError{Kind: KindNotAcceptable, Message: fmt.Sprintf(format, args...)}
}
