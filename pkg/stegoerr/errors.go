// Package stegoerr defines the typed error taxonomy shared by every embedding
// engine. Engines never print or log; they return one of these so callers at
// the CLI/HTTP boundary can decide how to present the failure.
package stegoerr

import "fmt"

// Kind classifies a failure into one of the categories every engine agrees on.
type Kind string

const (
	KindInvalidArgument     Kind = "invalid_argument"
	KindCapacityExceeded    Kind = "capacity_exceeded"
	KindTruncated           Kind = "truncated"
	KindPayloadTypeMismatch Kind = "payload_type_mismatch"
	KindInvalidZwcLength    Kind = "invalid_zwc_length"
	KindDecryptionFailed    Kind = "decryption_failed"
	KindDecompressionFailed Kind = "decompression_failed"
	KindUnsupportedFormat   Kind = "unsupported_format"
	KindNoUsableFrames      Kind = "no_usable_frames"
)

// Error is the concrete type returned by every engine in this module.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error

	// Optional structured fields, populated by specific kinds.
	Required  int64
	Available int64
	Remedy    string
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is allows errors.Is(err, &stegoerr.Error{Kind: stegoerr.KindCapacityExceeded}) style checks when the
// caller only cares about the category, by comparing against a bare *Error
// carrying only a Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return newf(KindInvalidArgument, format, args...)
}

func Truncated(format string, args ...interface{}) *Error {
	return newf(KindTruncated, format, args...)
}

func PayloadTypeMismatch(format string, args ...interface{}) *Error {
	return newf(KindPayloadTypeMismatch, format, args...)
}

func InvalidZwcLength(format string, args ...interface{}) *Error {
	return newf(KindInvalidZwcLength, format, args...)
}

func UnsupportedFormat(format string, args ...interface{}) *Error {
	return newf(KindUnsupportedFormat, format, args...)
}

func NoUsableFrames(format string, args ...interface{}) *Error {
	return newf(KindNoUsableFrames, format, args...)
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Wrapped: err}
}

func DecryptionFailed(err error) *Error {
	return Wrap(KindDecryptionFailed, "decryption failed, likely wrong password or corrupted carrier", err)
}

func DecompressionFailed(err error) *Error {
	return Wrap(KindDecompressionFailed, "decompression failed, likely wrong password or corrupted carrier", err)
}

// CapacityExceeded builds a CapacityExceeded error with the remedy text §7
// requires: a suggestion to shorten the message, grow the carrier, raise the
// bit depth, enable chroma, or raise maxPayloadBytes. required and available
// are in the unit of the failing check: bits for the engines' bit-level
// checks, bytes for the estimated-capacity and split-mode checks.
func CapacityExceeded(required, available int64, remedy string) *Error {
	return &Error{
		Kind:      KindCapacityExceeded,
		Message:   fmt.Sprintf("message requires %d but only %d are available", required, available),
		Required:  required,
		Available: available,
		Remedy:    remedy,
	}
}

const DefaultCapacityRemedy = "shorten the message, use a larger carrier, raise the bit depth, enable chroma components, or raise maxPayloadBytes"
