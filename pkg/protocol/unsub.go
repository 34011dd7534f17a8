package protocol

import "github.com/ShigekuniWork/ocypode/pkg/wire"

// Unsub cancels a subscription.
// Wire layout: [subscription_id p16]
type Unsub struct {
	SubscriptionID []byte
}

func (*Unsub) message() {}

// Command returns CommandUnsub.
func (*Unsub) Command() Command { return CommandUnsub }

// Flags returns 0; UNSUB has no optional sections.
func (*Unsub) Flags() Flags { return 0 }

// EncodeTo writes the UNSUB payload.
func (m *Unsub) EncodeTo(e *wire.Encoder) {
	e.WritePrefixed16(m.SubscriptionID)
}

func decodeUnsub(_ Flags, d *wire.Decoder) (Message, error) {
	sid, err := d.ReadPrefixed16()
	if err != nil {
		return nil, err
	}
	return &Unsub{SubscriptionID: sid}, nil
}
