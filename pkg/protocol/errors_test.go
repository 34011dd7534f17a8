package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{&wire.ShortBufferError{Expected: 2, Actual: 1}, "buffer_too_short"},
		{fmt.Errorf("protocol: decode PUB: %w", wire.ErrVarintOverflow), "varint_overflow"},
		{&wire.FieldTooLongError{Field: "prefixed8", Len: 300, Max: 255}, "field_too_long"},
		{&UnknownCommandError{Byte: 0xF}, "unknown_command"},
		{&UnsupportedCommandError{Command: CommandPing}, "unsupported_command"},
		{&UnknownAuthTypeError{Byte: 3}, "unknown_auth_type"},
		{ErrWrongDirection, "wrong_direction"},
		{ErrNilMessage, "nil_message"},
		{&LengthMismatchError{Declared: 1, Actual: 2}, "length_mismatch"},
		{ErrFrameTooLarge, "frame_too_large"},
		{&TopicError{Field: "topic", Err: topic.ErrEmptyLayer}, "invalid_topic_empty_layer"},
		{&TopicError{Field: "filter", Err: &topic.LayerCountError{Count: 9}}, "invalid_topic_layer_count"},
		{errors.New("boom"), "unknown"},
	}

	for _, tc := range tests {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestTopicErrPassesWireErrors(t *testing.T) {
	short := &wire.ShortBufferError{Expected: 4, Actual: 0}
	if err := topicErr("topic", short); err != short {
		t.Errorf("topicErr() = %v, want the wire error unchanged", err)
	}

	err := topicErr("reply_to", topic.ErrTrailingSlash)
	if !errors.Is(err, ErrInvalidTopic) || !errors.Is(err, topic.ErrTrailingSlash) {
		t.Errorf("topicErr() = %v, want ErrInvalidTopic wrapping ErrTrailingSlash", err)
	}
}
