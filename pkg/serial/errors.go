package serial

import (
	"errors"
	"fmt"
)

// Sentinel errors for stream decoding
var (
	// ErrBadHeader indicates that the bytes do not start with a known stream header
	ErrBadHeader = errors.New("serial: bad stream header")
	// ErrTruncated indicates that the stream ended in the middle of a field
	ErrTruncated = errors.New("serial: unexpected end of stream")
	// ErrTypeMismatch indicates that the next field or object is not the one requested
	ErrTypeMismatch = errors.New("serial: type mismatch")
	// ErrInvalidValue indicates a well-formed field whose value is not acceptable
	ErrInvalidValue = errors.New("serial: invalid value")
)

// FieldError describes a failed read with its position in the stream
type FieldError struct {
	Op       string // Read operation (e.g. "ReadDouble", "ReadObject")
	Expected string // What the reader asked for
	Got      string // What was found on the stream
	Offset   int    // Byte offset of the offending tag
	Err      error  // Underlying sentinel
}

func (e *FieldError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("serial: %s at offset %d: expected %s, got %s", e.Op, e.Offset, e.Expected, e.Got)
	}
	return fmt.Sprintf("serial: %s at offset %d: expected %s: %v", e.Op, e.Offset, e.Expected, e.Err)
}

func (e *FieldError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrTypeMismatch
}

// InvalidValuef builds an ErrInvalidValue error with context
func InvalidValuef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
