package protocol

import (
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Msg delivers a published payload to a subscriber.
//
// Wire layout:
//
//	[topic p16][subscription_id p16]
//	if FlagReplyTo: [reply_to p16]
//	if FlagHeaders: [headers p16]
//	[payload_len varint][payload]
type Msg struct {
	Topic          topic.Topic
	SubscriptionID []byte
	ReplyTo        *topic.Topic
	Headers        *Headers
	Payload        []byte
}

func (*Msg) message() {}

// Command returns CommandMsg.
func (*Msg) Command() Command { return CommandMsg }

// Flags reports FlagReplyTo and FlagHeaders.
func (m *Msg) Flags() Flags {
	return deliveryFlags(m.ReplyTo, m.Headers)
}

// EncodeTo writes the MSG payload.
func (m *Msg) EncodeTo(e *wire.Encoder) {
	if !requireTopic(e, "topic", m.Topic) {
		return
	}
	m.Topic.EncodeTo(e)
	e.WritePrefixed16(m.SubscriptionID)
	encodeDelivery(e, m.ReplyTo, m.Headers, m.Payload)
}

func decodeMsg(flags Flags, d *wire.Decoder) (Message, error) {
	t, err := topic.Decode(d)
	if err != nil {
		return nil, topicErr("topic", err)
	}
	sid, err := d.ReadPrefixed16()
	if err != nil {
		return nil, err
	}
	replyTo, headers, payload, err := decodeDelivery(flags, d)
	if err != nil {
		return nil, err
	}
	return &Msg{
		Topic:          t,
		SubscriptionID: sid,
		ReplyTo:        replyTo,
		Headers:        headers,
		Payload:        payload,
	}, nil
}
