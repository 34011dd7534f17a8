package protocol

import (
	"fmt"

	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Message is one decoded command payload: *Info, *Connect, *Pub, *Sub,
// *Unsub or *Msg.
type Message interface {
	// Command returns the command the message is framed as.
	Command() Command

	// Flags returns the fixed header flags describing which optional
	// sections the payload carries. Commands without optional sections
	// return 0.
	Flags() Flags

	// EncodeTo writes the payload, without the fixed header.
	// Oversize fields are reported through e.Err.
	EncodeTo(e *wire.Encoder)

	message()
}

// decodeFunc decodes one command payload.
type decodeFunc func(flags Flags, d *wire.Decoder) (Message, error)

// EncodeFrame serializes m into one complete frame: fixed header followed
// by the payload. It does not check direction; use a ServerCodec or
// ClientCodec for that.
func EncodeFrame(m Message) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	payload := wire.NewEncoder()
	m.EncodeTo(payload)
	if err := payload.Err(); err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", m.Command(), err)
	}
	if payload.Len() > wire.MaxVarint {
		return nil, fmt.Errorf("protocol: encode %s: %w", m.Command(),
			&wire.FieldTooLongError{Field: "remaining length", Len: payload.Len(), Max: wire.MaxVarint})
	}

	h := FixedHeader{
		Command:         m.Command(),
		Flags:           m.Flags(),
		RemainingLength: uint32(payload.Len()),
	}
	frame := wire.NewEncoderWithCap(h.Len() + payload.Len())
	h.EncodeTo(frame)
	frame.WriteBytes(payload.Bytes())
	return frame.Bytes(), nil
}

// requireTopic fails e when t was never set. A zero topic would encode as an
// empty string that every receiver rejects.
func requireTopic(e *wire.Encoder, field string, t interface{ IsZero() bool }) bool {
	if t.IsZero() {
		e.Fail(&TopicError{Field: field, Err: &topic.LengthError{Length: 0}})
		return false
	}
	return true
}

// isNil reports whether m is a nil interface or a nil message pointer.
func isNil(m Message) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Info:
		return v == nil
	case *Connect:
		return v == nil
	case *Pub:
		return v == nil
	case *Sub:
		return v == nil
	case *Unsub:
		return v == nil
	case *Msg:
		return v == nil
	}
	return false
}
