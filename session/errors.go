package session

import (
	"errors"
	"fmt"
)

// Kind is a stable category for the failures of a conversion.
// Callers should branch on Kind rather than matching error strings.
type Kind string

const (
	KindIO           Kind = "IO"           // input file cannot be opened or read
	KindParse        Kind = "Parse"        // input is not well-formed XML
	KindMissingLabel Kind = "MissingLabel" // one of the four labels never appears
	KindStructure    Kind = "Structure"    // a label is not followed by its value node
	KindDecode       Kind = "Decode"       // a payload is not valid base64
	KindConsistency  Kind = "Consistency"  // decoded sequences disagree on their lengths
	KindWrite        Kind = "Write"        // the SVG output cannot be written
)

// Error is the structured error returned by the conversion pipeline.
//
// Label is the session label involved, if any.
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Label   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Label != "" {
		msg = fmt.Sprintf("%s: %s", e.Label, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns an *Error without underlying cause.
func NewError(kind Kind, label, msg string) error {
	return &Error{Kind: kind, Label: label, Message: msg}
}

// WrapError returns an *Error wrapping `cause`.
func WrapError(kind Kind, label, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, label, msg)
	}
	return &Error{Kind: kind, Label: label, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
