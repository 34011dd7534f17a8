package topic

import (
	"bytes"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// WildcardKind indicates which wildcard characters a TopicFilter contains.
type WildcardKind uint8

const (
	// WildcardNone means the filter is an exact topic string.
	WildcardNone WildcardKind = iota
	// WildcardSingleLayer means one or more '+' and no '#'.
	WildcardSingleLayer
	// WildcardMultiLayer means a terminal '#' and no '+'.
	WildcardMultiLayer
	// WildcardBoth means both '+' and '#'.
	WildcardBoth
)

// String returns the string representation of the wildcard kind.
func (k WildcardKind) String() string {
	switch k {
	case WildcardNone:
		return "None"
	case WildcardSingleLayer:
		return "SingleLayer"
	case WildcardMultiLayer:
		return "MultiLayer"
	case WildcardBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// TopicFilter is a topic pattern used when subscribing.
//
// A layer containing '#' anywhere (for example "ab#") counts as a
// multi-layer wildcard layer and is only legal as the last layer.
type TopicFilter struct {
	l        layout
	wildcard WildcardKind
}

// DecodeFilter reads a TopicFilter from a decoder.
// The filter's bytes alias the decoder's buffer.
func DecodeFilter(d *wire.Decoder) (TopicFilter, error) {
	l, err := decodeLayout(d)
	if err != nil {
		return TopicFilter{}, err
	}
	return newFilter(l)
}

// NewFilter validates s as a topic filter.
func NewFilter(s string) (TopicFilter, error) {
	l, err := parseLayout([]byte(s))
	if err != nil {
		return TopicFilter{}, err
	}
	return newFilter(l)
}

// MustNewFilter is like NewFilter but panics if s is not a valid filter.
func MustNewFilter(s string) TopicFilter {
	f, err := NewFilter(s)
	if err != nil {
		panic(err)
	}
	return f
}

func newFilter(l layout) (TopicFilter, error) {
	kind, err := classifyWildcards(&l)
	if err != nil {
		return TopicFilter{}, err
	}
	return TopicFilter{l: l, wildcard: kind}, nil
}

func classifyWildcards(l *layout) (WildcardKind, error) {
	count := int(l.layers)
	hasSingle := false
	hasMulti := false

	for i := 0; i < count; i++ {
		layer := l.layer(i)
		if bytes.IndexByte(layer, SingleLayerWildcard) >= 0 {
			hasSingle = true
		}
		if bytes.IndexByte(layer, MultiLayerWildcard) >= 0 {
			if i+1 != count {
				return WildcardNone, ErrMultiLayerWildcardNotTerminal
			}
			hasMulti = true
		}
	}

	switch {
	case hasSingle && hasMulti:
		return WildcardBoth, nil
	case hasSingle:
		return WildcardSingleLayer, nil
	case hasMulti:
		return WildcardMultiLayer, nil
	default:
		return WildcardNone, nil
	}
}

// EncodeTo writes the filter as a prefixed16 byte string.
func (f TopicFilter) EncodeTo(e *wire.Encoder) {
	f.l.encodeTo(e)
}

// Bytes returns the raw filter bytes. Do not modify.
func (f TopicFilter) Bytes() []byte {
	return f.l.raw
}

// String returns the filter as a string.
func (f TopicFilter) String() string {
	return string(f.l.raw)
}

// IsZero reports whether f is the zero TopicFilter.
func (f TopicFilter) IsZero() bool {
	return f.l.layers == 0
}

// LayerCount returns the number of layers.
func (f TopicFilter) LayerCount() int {
	return int(f.l.layers)
}

// Layer returns the bytes of layer i. It panics if i is out of range.
func (f TopicFilter) Layer(i int) []byte {
	return f.l.layer(i)
}

// Layers returns every layer in order.
func (f TopicFilter) Layers() [][]byte {
	return f.l.allLayers()
}

// Wildcard returns the wildcard kind computed at construction.
func (f TopicFilter) Wildcard() WildcardKind {
	return f.wildcard
}

// Equal reports whether f and o hold the same bytes.
func (f TopicFilter) Equal(o TopicFilter) bool {
	return bytes.Equal(f.l.raw, o.l.raw)
}
