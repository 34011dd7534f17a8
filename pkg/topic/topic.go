package topic

import (
	"bytes"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Topic is a fully specified topic used when publishing messages.
// Wildcards are not permitted. The zero value is not a valid topic.
type Topic struct {
	l layout
}

// Decode reads a Topic from a decoder.
// The topic's bytes alias the decoder's buffer.
func Decode(d *wire.Decoder) (Topic, error) {
	l, err := decodeLayout(d)
	if err != nil {
		return Topic{}, err
	}
	return newTopic(l)
}

// New validates s as a publish topic.
func New(s string) (Topic, error) {
	l, err := parseLayout([]byte(s))
	if err != nil {
		return Topic{}, err
	}
	return newTopic(l)
}

// MustNew is like New but panics if s is not a valid topic.
func MustNew(s string) Topic {
	t, err := New(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTopic(l layout) (Topic, error) {
	if bytes.IndexByte(l.raw, SingleLayerWildcard) >= 0 || bytes.IndexByte(l.raw, MultiLayerWildcard) >= 0 {
		return Topic{}, ErrWildcardInTopic
	}
	return Topic{l: l}, nil
}

// EncodeTo writes the topic as a prefixed16 byte string.
func (t Topic) EncodeTo(e *wire.Encoder) {
	t.l.encodeTo(e)
}

// Bytes returns the raw topic bytes. Do not modify.
func (t Topic) Bytes() []byte {
	return t.l.raw
}

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t.l.raw)
}

// IsZero reports whether t is the zero Topic.
func (t Topic) IsZero() bool {
	return t.l.layers == 0
}

// LayerCount returns the number of layers.
func (t Topic) LayerCount() int {
	return int(t.l.layers)
}

// Layer returns the bytes of layer i. It panics if i is out of range.
func (t Topic) Layer(i int) []byte {
	return t.l.layer(i)
}

// Layers returns every layer in order.
func (t Topic) Layers() [][]byte {
	return t.l.allLayers()
}

// Equal reports whether t and o hold the same bytes.
func (t Topic) Equal(o Topic) bool {
	return bytes.Equal(t.l.raw, o.l.raw)
}
