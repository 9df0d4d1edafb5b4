package errs

import (
	"errors"
	"fmt"
)

// Error is the typed carrier every raising site in this module wraps a
// sentinel in before returning it. It satisfies errors.Is/errors.As
// against both the sentinel it wraps and, when present, the lower-level
// cause that triggered it (an *os.PathError, a yaml parse error, ...).
type Error struct {
	kind     Kind
	sentinel error
	cause    error

	offset    int64
	hasOffset bool

	variable    string
	hasVariable bool
}

// New wraps sentinel in an *Error with no offset, variable, or cause.
func New(sentinel error) *Error {
	return &Error{kind: kindOf[sentinel], sentinel: sentinel}
}

// Wrap wraps sentinel together with the lower-level error that caused
// it, for call sites that currently do fmt.Errorf("%w: %w", sentinel, cause).
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return New(sentinel)
	}

	return &Error{kind: kindOf[sentinel], sentinel: sentinel, cause: cause}
}

// Kind reports which sentinel this error wraps.
func (e *Error) Kind() Kind { return e.kind }

// Offset reports the absolute byte offset the failure was detected at,
// if one was attached via WithOffset.
func (e *Error) Offset() (int64, bool) { return e.offset, e.hasOffset }

// Variable reports the variable name involved in the failure, if one
// was attached via WithVariable.
func (e *Error) Variable() (string, bool) { return e.variable, e.hasVariable }

func (e *Error) Error() string {
	msg := e.sentinel.Error()
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.cause)
	}

	if e.hasVariable {
		msg = fmt.Sprintf("%s (variable %q)", msg, e.variable)
	}

	if e.hasOffset {
		msg = fmt.Sprintf("%s (offset %d)", msg, e.offset)
	}

	return msg
}

// Unwrap exposes both the wrapped sentinel and, if present, the
// underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.sentinel, e.cause}
	}

	return []error{e.sentinel}
}

// asError returns err as an *Error, copying it so the original is left
// untouched, or wraps it fresh if it isn't one yet (e.g. a bare sentinel
// passed straight from the errs var block).
func asError(err error) *Error {
	var carrier *Error
	if errors.As(err, &carrier) {
		cp := *carrier
		return &cp
	}

	return New(err)
}

// WithOffset wraps err with the absolute byte offset at which the
// failure was detected. The returned error still matches
// errors.Is(err, target) against the wrapped sentinel and exposes the
// offset through (*Error).Offset.
func WithOffset(err error, offset int64) error {
	if err == nil {
		return nil
	}

	e := asError(err)
	e.offset = offset
	e.hasOffset = true

	return e
}

// WithVariable wraps err with the name of the variable that caused it,
// exposed through (*Error).Variable.
func WithVariable(err error, name string) error {
	if err == nil {
		return nil
	}

	e := asError(err)
	e.variable = name
	e.hasVariable = true

	return e
}

// WithIndex wraps err with the VarHeader index that caused it. Unlike
// offset and variable, the index is not part of the typed carrier (a
// dictionary position is only ever meaningful alongside the variable
// name, already attached by the validator that raised err); it is
// folded into the message text only.
func WithIndex(err error, index int) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w (var index %d)", err, index)
}
