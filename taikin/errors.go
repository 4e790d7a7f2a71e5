package taikin

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is the single error type returned by this package. Callers branch on
// Kind, or use errors.Is with ErrValidation, ErrNotFound and ErrPersistence.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationError(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func notFoundError(op, id string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: fmt.Sprintf("schedule %s", id)}
}

func persistenceError(op string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}
