package protocol

import (
	"errors"
	"fmt"

	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Protocol errors. Wire-level read failures are reported with the errors of
// package wire (wire.ErrBufferTooShort, wire.ErrVarintOverflow).
var (
	ErrUnknownCommand     = errors.New("protocol: unknown command")
	ErrUnsupportedCommand = errors.New("protocol: unsupported command")
	ErrUnknownAuthType    = errors.New("protocol: unknown auth type")
	ErrInvalidTopic       = errors.New("protocol: invalid topic")
	ErrWrongDirection     = errors.New("protocol: message cannot be encoded in this direction")
	ErrLengthMismatch     = errors.New("protocol: remaining length mismatch")
	ErrFrameTooLarge      = errors.New("protocol: frame too large")
	ErrUnknownRole        = errors.New("protocol: unknown role")
	ErrNilMessage         = errors.New("protocol: nil message")
)

// UnknownCommandError reports a command nibble outside the defined commands.
type UnknownCommandError struct {
	Byte byte
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("protocol: unknown command byte: %#x", e.Byte)
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// UnsupportedCommandError reports a known command that the decoding role
// does not accept.
type UnsupportedCommandError struct {
	Command Command
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("protocol: unsupported command: %s", e.Command)
}

func (e *UnsupportedCommandError) Is(target error) bool {
	return target == ErrUnsupportedCommand
}

// UnknownAuthTypeError reports a CONNECT auth section with an unknown type byte.
type UnknownAuthTypeError struct {
	Byte byte
}

func (e *UnknownAuthTypeError) Error() string {
	return fmt.Sprintf("protocol: unknown auth type: %#x", e.Byte)
}

func (e *UnknownAuthTypeError) Is(target error) bool {
	return target == ErrUnknownAuthType
}

// TopicError wraps a topic validation failure with the field it occurred in.
// It matches both ErrInvalidTopic and the underlying topic error.
type TopicError struct {
	Field string
	Err   error
}

func (e *TopicError) Error() string {
	return fmt.Sprintf("protocol: invalid topic in %s: %v", e.Field, e.Err)
}

func (e *TopicError) Unwrap() error {
	return e.Err
}

func (e *TopicError) Is(target error) bool {
	return target == ErrInvalidTopic
}

// topicErr wraps validation failures; wire read failures pass through unchanged.
func topicErr(field string, err error) error {
	if errors.Is(err, wire.ErrBufferTooShort) || errors.Is(err, wire.ErrVarintOverflow) {
		return err
	}
	return &TopicError{Field: field, Err: err}
}

// LengthMismatchError reports a frame whose declared remaining length does
// not match the bytes that follow the header or the bytes the payload codec
// consumed.
type LengthMismatchError struct {
	Declared uint32
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("protocol: remaining length %d does not match %d payload bytes", e.Declared, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// ErrorKind returns a stable, low-cardinality name for a codec error.
// It is meant for metric labels and log fields.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, wire.ErrBufferTooShort):
		return "buffer_too_short"
	case errors.Is(err, wire.ErrVarintOverflow):
		return "varint_overflow"
	case errors.Is(err, wire.ErrFieldTooLong):
		return "field_too_long"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrUnsupportedCommand):
		return "unsupported_command"
	case errors.Is(err, ErrUnknownAuthType):
		return "unknown_auth_type"
	case errors.Is(err, ErrWrongDirection):
		return "wrong_direction"
	case errors.Is(err, ErrNilMessage):
		return "nil_message"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrFrameTooLarge):
		return "frame_too_large"
	case errors.Is(err, ErrInvalidTopic):
		return "invalid_topic_" + topicErrorKind(err)
	default:
		return "unknown"
	}
}

func topicErrorKind(err error) string {
	switch {
	case errors.Is(err, topic.ErrExceedsMaxLength):
		return "length"
	case errors.Is(err, topic.ErrExceedsMaxLayerCount):
		return "layer_count"
	case errors.Is(err, topic.ErrLeadingSlash):
		return "leading_slash"
	case errors.Is(err, topic.ErrTrailingSlash):
		return "trailing_slash"
	case errors.Is(err, topic.ErrEmptyLayer):
		return "empty_layer"
	case errors.Is(err, topic.ErrWildcardInTopic):
		return "wildcard"
	case errors.Is(err, topic.ErrMultiLayerWildcardNotTerminal):
		return "wildcard_not_terminal"
	default:
		return "other"
	}
}
