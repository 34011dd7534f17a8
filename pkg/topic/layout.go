package topic

import "github.com/ShigekuniWork/ocypode/pkg/wire"

// Topic limits.
const (
	MaxLength     = 256
	MaxLayers     = 8
	maxSeparators = MaxLayers - 1
)

const (
	Separator           byte = '/'
	SingleLayerWildcard byte = '+'
	MultiLayerWildcard  byte = '#'
)

// layout is the validated representation shared by Topic and TopicFilter.
// Only the first layers-1 entries of separators are meaningful.
type layout struct {
	raw        []byte
	layers     uint8
	separators [maxSeparators]uint8
}

// decodeLayout reads a prefixed16 topic string and validates its structure.
// Wildcard rules are left to the callers.
func decodeLayout(d *wire.Decoder) (layout, error) {
	raw, err := d.ReadPrefixed16()
	if err != nil {
		return layout{}, err
	}
	return parseLayout(raw)
}

func parseLayout(raw []byte) (layout, error) {
	if len(raw) == 0 || len(raw) > MaxLength {
		return layout{}, &LengthError{Length: len(raw)}
	}
	if raw[0] == Separator {
		return layout{}, ErrLeadingSlash
	}
	if raw[len(raw)-1] == Separator {
		return layout{}, ErrTrailingSlash
	}

	l := layout{raw: raw}
	count := 0
	prevSeparator := false
	for i, b := range raw {
		if b != Separator {
			prevSeparator = false
			continue
		}
		if prevSeparator {
			return layout{}, ErrEmptyLayer
		}
		if count >= maxSeparators {
			return layout{}, &LayerCountError{Count: count + 2}
		}
		// i < MaxLength, so every offset fits a byte.
		l.separators[count] = uint8(i)
		count++
		prevSeparator = true
	}

	if count+1 > MaxLayers {
		return layout{}, &LayerCountError{Count: count + 1}
	}
	l.layers = uint8(count + 1)
	return l, nil
}

func (l *layout) layer(i int) []byte {
	if i < 0 || i >= int(l.layers) {
		panic("topic: layer index out of range")
	}
	start := 0
	if i > 0 {
		start = int(l.separators[i-1]) + 1
	}
	end := len(l.raw)
	if i+1 < int(l.layers) {
		end = int(l.separators[i])
	}
	return l.raw[start:end:end]
}

func (l *layout) allLayers() [][]byte {
	out := make([][]byte, l.layers)
	for i := range out {
		out[i] = l.layer(i)
	}
	return out
}

func (l *layout) encodeTo(e *wire.Encoder) {
	e.WritePrefixed16(l.raw)
}
