package inspect

import (
	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/ShigekuniWork/ocypode/pkg/topic"
)

// Description is the JSON view of a decoded message.
type Description struct {
	Command string         `json:"command"`
	Flags   uint8          `json:"flags"`
	Fields  map[string]any `json:"fields"`
}

// Header is the JSON view of one header entry.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TopicDescription is the JSON view of a topic or topic filter.
type TopicDescription struct {
	Value    string   `json:"value"`
	Layers   []string `json:"layers"`
	Wildcard string   `json:"wildcard,omitempty"`
}

// Describe converts m into its JSON view. Byte fields are rendered as
// strings; credentials are redacted.
func Describe(m protocol.Message) Description {
	d := Description{
		Command: m.Command().String(),
		Flags:   uint8(m.Flags()),
		Fields:  map[string]any{},
	}

	switch m := m.(type) {
	case *protocol.Info:
		d.Fields["version"] = m.Version
		d.Fields["max_payload"] = m.MaxPayload
		d.Fields["server_id"] = string(m.ServerID)
		d.Fields["server_name"] = string(m.ServerName)
		d.Fields["auth_required"] = m.AuthRequired
		d.Fields["headers_supported"] = m.HeadersSupported
	case *protocol.Connect:
		d.Fields["version"] = m.Version
		d.Fields["verbose"] = m.Verbose
		switch auth := m.Auth.(type) {
		case *protocol.PasswordAuth:
			d.Fields["auth"] = map[string]any{"type": auth.Type().String(), "username": string(auth.Username)}
		case *protocol.JWTAuth:
			d.Fields["auth"] = map[string]any{"type": auth.Type().String(), "token_length": len(auth.Token)}
		}
	case *protocol.Pub:
		d.Fields["topic"] = m.Topic.String()
		describeDelivery(d.Fields, m.ReplyTo, m.Headers, m.Payload)
	case *protocol.Msg:
		d.Fields["topic"] = m.Topic.String()
		d.Fields["subscription_id"] = string(m.SubscriptionID)
		describeDelivery(d.Fields, m.ReplyTo, m.Headers, m.Payload)
	case *protocol.Sub:
		d.Fields["filter"] = m.Filter.String()
		d.Fields["wildcard"] = m.Filter.Wildcard().String()
		d.Fields["subscription_id"] = string(m.SubscriptionID)
		if m.QueueGroup != nil {
			d.Fields["queue_group"] = string(m.QueueGroup)
		}
	case *protocol.Unsub:
		d.Fields["subscription_id"] = string(m.SubscriptionID)
	}
	return d
}

func describeDelivery(fields map[string]any, replyTo *topic.Topic, headers *protocol.Headers, payload []byte) {
	if replyTo != nil {
		fields["reply_to"] = replyTo.String()
	}
	if headers != nil {
		entries := make([]Header, 0, headers.Len())
		for _, entry := range headers.Entries() {
			entries = append(entries, Header{Key: string(entry.Key), Value: string(entry.Value)})
		}
		fields["headers"] = entries
	}
	fields["payload"] = string(payload)
	fields["payload_size"] = len(payload)
}

// DescribeTopic converts a publish topic into its JSON view.
func DescribeTopic(t topic.Topic) TopicDescription {
	return TopicDescription{Value: t.String(), Layers: layerStrings(t.Layers())}
}

// DescribeFilter converts a topic filter into its JSON view.
func DescribeFilter(f topic.TopicFilter) TopicDescription {
	return TopicDescription{
		Value:    f.String(),
		Layers:   layerStrings(f.Layers()),
		Wildcard: f.Wildcard().String(),
	}
}

func layerStrings(layers [][]byte) []string {
	out := make([]string, len(layers))
	for i, layer := range layers {
		out[i] = string(layer)
	}
	return out
}
