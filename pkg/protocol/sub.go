package protocol

import (
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Sub registers interest in a topic filter.
//
// Wire layout:
//
//	[filter p16][subscription_id p16]
//	if FlagQueueGroup: [queue_group p8]
type Sub struct {
	Filter         topic.TopicFilter
	SubscriptionID []byte
	QueueGroup     []byte // nil when the subscriber is not in a queue group
}

func (*Sub) message() {}

// Command returns CommandSub.
func (*Sub) Command() Command { return CommandSub }

// Flags reports FlagQueueGroup.
func (m *Sub) Flags() Flags {
	if m.QueueGroup != nil {
		return FlagQueueGroup
	}
	return 0
}

// EncodeTo writes the SUB payload.
func (m *Sub) EncodeTo(e *wire.Encoder) {
	if !requireTopic(e, "filter", m.Filter) {
		return
	}
	m.Filter.EncodeTo(e)
	e.WritePrefixed16(m.SubscriptionID)
	if m.QueueGroup != nil {
		e.WritePrefixed8(m.QueueGroup)
	}
}

func decodeSub(flags Flags, d *wire.Decoder) (Message, error) {
	f, err := topic.DecodeFilter(d)
	if err != nil {
		return nil, topicErr("filter", err)
	}
	sid, err := d.ReadPrefixed16()
	if err != nil {
		return nil, err
	}
	m := &Sub{Filter: f, SubscriptionID: sid}
	if flags.Has(FlagQueueGroup) {
		group, err := d.ReadPrefixed8()
		if err != nil {
			return nil, err
		}
		// Keep an empty group distinguishable from an absent one.
		if group == nil {
			group = []byte{}
		}
		m.QueueGroup = group
	}
	return m, nil
}
