package keyfile

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a keyword or card index does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// FieldError reports an invalid field formulation. Err is the cause, if any.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CardError reports a structural problem assembling a card. Err is the
// cause, if any.
type CardError struct {
	Field  string
	Reason string
	Err    error
}

func (e *CardError) Error() string {
	msg := "invalid card: " + e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("invalid card: field %q: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CardError) Unwrap() error {
	return e.Err
}

// KeywordInstantiationError reports that a keyword could not be turned into a
// concrete KeyWord. Err holds the underlying FieldError or CardError, if any.
type KeywordInstantiationError struct {
	KeyWord string
	Reason  string
	Err     error
}

func (e *KeywordInstantiationError) Error() string {
	msg := fmt.Sprintf("cannot instantiate keyword %q", e.KeyWord)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *KeywordInstantiationError) Unwrap() error {
	return e.Err
}
