package protocol

import (
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Pub publishes a payload to a topic.
//
// Wire layout:
//
//	[topic p16]
//	if FlagReplyTo: [reply_to p16]
//	if FlagHeaders: [headers p16]
//	[payload_len varint][payload]
type Pub struct {
	Topic   topic.Topic
	ReplyTo *topic.Topic
	Headers *Headers
	Payload []byte
}

func (*Pub) message() {}

// Command returns CommandPub.
func (*Pub) Command() Command { return CommandPub }

// Flags reports FlagReplyTo and FlagHeaders.
func (m *Pub) Flags() Flags {
	return deliveryFlags(m.ReplyTo, m.Headers)
}

// EncodeTo writes the PUB payload.
func (m *Pub) EncodeTo(e *wire.Encoder) {
	if !requireTopic(e, "topic", m.Topic) {
		return
	}
	m.Topic.EncodeTo(e)
	encodeDelivery(e, m.ReplyTo, m.Headers, m.Payload)
}

func decodePub(flags Flags, d *wire.Decoder) (Message, error) {
	t, err := topic.Decode(d)
	if err != nil {
		return nil, topicErr("topic", err)
	}
	replyTo, headers, payload, err := decodeDelivery(flags, d)
	if err != nil {
		return nil, err
	}
	return &Pub{
		Topic:   t,
		ReplyTo: replyTo,
		Headers: headers,
		Payload: payload,
	}, nil
}

// deliveryFlags computes the flags shared by PUB and MSG.
func deliveryFlags(replyTo *topic.Topic, headers *Headers) Flags {
	var f Flags
	if replyTo != nil {
		f |= FlagReplyTo
	}
	if headers != nil {
		f |= FlagHeaders
	}
	return f
}

// encodeDelivery writes the reply-to, headers and payload tail of PUB and MSG.
func encodeDelivery(e *wire.Encoder, replyTo *topic.Topic, headers *Headers, payload []byte) {
	if replyTo != nil {
		if !requireTopic(e, "reply_to", *replyTo) {
			return
		}
		replyTo.EncodeTo(e)
	}
	if headers != nil {
		headers.encodeBlockTo(e)
	}
	e.WriteVarintBytes(payload)
}

// decodeDelivery reads the reply-to, headers and payload tail of PUB and MSG.
func decodeDelivery(flags Flags, d *wire.Decoder) (*topic.Topic, *Headers, []byte, error) {
	var replyTo *topic.Topic
	if flags.Has(FlagReplyTo) {
		t, err := topic.Decode(d)
		if err != nil {
			return nil, nil, nil, topicErr("reply_to", err)
		}
		replyTo = &t
	}

	var headers *Headers
	if flags.Has(FlagHeaders) {
		h, err := decodeHeadersBlock(d)
		if err != nil {
			return nil, nil, nil, err
		}
		headers = h
	}

	payload, err := d.ReadVarintBytes()
	if err != nil {
		return nil, nil, nil, err
	}
	return replyTo, headers, payload, nil
}
