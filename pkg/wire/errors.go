package wire

import (
	"errors"
	"fmt"
)

var (
	ErrBufferTooShort = errors.New("wire: buffer too short")
	ErrVarintOverflow = errors.New("wire: variable-length integer exceeds 4 bytes")
	ErrFieldTooLong   = errors.New("wire: field too long")
)

// ShortBufferError reports a read that needed more bytes than remained.
type ShortBufferError struct {
	Expected int
	Actual   int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("wire: buffer too short: expected at least %d bytes, got %d", e.Expected, e.Actual)
}

func (e *ShortBufferError) Is(target error) bool {
	return target == ErrBufferTooShort
}

// FieldTooLongError reports a value that does not fit the width of its field.
type FieldTooLongError struct {
	Field string
	Len   int
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("wire: %s length %d exceeds the maximum of %d", e.Field, e.Len, e.Max)
}

func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrFieldTooLong
}

func shortBuffer(expected, actual int) error {
	return &ShortBufferError{Expected: expected, Actual: actual}
}
