package topic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

func wireBytes(raw string) *wire.Decoder {
	e := wire.NewEncoder()
	e.WritePrefixed16([]byte(raw))
	return wire.NewDecoder(e.Bytes())
}

func TestDecodeTopic(t *testing.T) {
	tests := []struct {
		raw    string
		layers []string
	}{
		{"a/b", []string{"a", "b"}},
		{"events", []string{"events"}},
		{"sensor/data", []string{"sensor", "data"}},
		{"a/b/c/d/e/f/g/h", []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
		{"x", []string{"x"}},
		{"$SYS/broker/uptime", []string{"$SYS", "broker", "uptime"}},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			d := wireBytes(tc.raw)
			topic, err := Decode(d)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !d.EOF() {
				t.Errorf("Decode() left %d bytes", d.Remaining())
			}
			if topic.String() != tc.raw {
				t.Errorf("String() = %q, want %q", topic.String(), tc.raw)
			}
			if topic.LayerCount() != len(tc.layers) {
				t.Fatalf("LayerCount() = %d, want %d", topic.LayerCount(), len(tc.layers))
			}
			for i, want := range tc.layers {
				if got := string(topic.Layer(i)); got != want {
					t.Errorf("Layer(%d) = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestDecodeTopicErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"leading slash", "/a", ErrLeadingSlash},
		{"trailing slash", "a/", ErrTrailingSlash},
		{"only slash", "/", ErrLeadingSlash},
		{"empty layer", "a//b", ErrEmptyLayer},
		{"nine layers", "a/b/c/d/e/f/g/h/i", ErrExceedsMaxLayerCount},
		{"too long", strings.Repeat("a", 257), ErrExceedsMaxLength},
		{"empty", "", ErrExceedsMaxLength},
		{"single layer wildcard", "a/+/b", ErrWildcardInTopic},
		{"multi layer wildcard", "sensor/#", ErrWildcardInTopic},
		{"embedded wildcard", "a/b+c", ErrWildcardInTopic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(wireBytes(tc.raw))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Decode(%q) error = %v, want %v", tc.raw, err, tc.wantErr)
			}
		})
	}
}

func TestMaxLengthBoundary(t *testing.T) {
	raw := strings.Repeat("a", MaxLength)
	topic, err := New(raw)
	if err != nil {
		t.Fatalf("New(256 bytes) error = %v", err)
	}
	if len(topic.Bytes()) != MaxLength {
		t.Errorf("len(Bytes()) = %d", len(topic.Bytes()))
	}

	_, err = New(raw + "a")
	var lengthErr *LengthError
	if !errors.As(err, &lengthErr) {
		t.Fatalf("New(257 bytes) error = %v, want *LengthError", err)
	}
	if lengthErr.Length != MaxLength+1 {
		t.Errorf("Length = %d, want %d", lengthErr.Length, MaxLength+1)
	}
}

func TestLayerCountErrorReportsCount(t *testing.T) {
	tests := []struct {
		raw   string
		count int
	}{
		{"a/b/c/d/e/f/g/h/i", 9},
		{"a/b/c/d/e/f/g/h/i/j/k", 9},
	}
	for _, tc := range tests {
		_, err := New(tc.raw)
		var layerErr *LayerCountError
		if !errors.As(err, &layerErr) {
			t.Fatalf("New(%q) error = %v, want *LayerCountError", tc.raw, err)
		}
		if layerErr.Count != tc.count {
			t.Errorf("New(%q) Count = %d, want %d", tc.raw, layerErr.Count, tc.count)
		}
	}
}

func TestEmptyLayerDetectedBeforeLayerLimit(t *testing.T) {
	_, err := New("a/b/c/d/e/f/g//h")
	if !errors.Is(err, ErrEmptyLayer) {
		t.Errorf("error = %v, want ErrEmptyLayer", err)
	}
}

func TestDecodeTopicShortBuffer(t *testing.T) {
	d := wire.NewDecoder([]byte{0x00, 0x05, 'a', 'b'})
	_, err := Decode(d)
	if !errors.Is(err, wire.ErrBufferTooShort) {
		t.Errorf("Decode() error = %v, want wire.ErrBufferTooShort", err)
	}
}

func TestTopicEncodeReplaysRawBytes(t *testing.T) {
	topic := MustNew("sensor/data/temperature")
	e := wire.NewEncoder()
	topic.EncodeTo(e)

	want := append([]byte{0x00, 23}, "sensor/data/temperature"...)
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("EncodeTo() = % x, want % x", e.Bytes(), want)
	}

	decoded, err := Decode(wire.NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !decoded.Equal(topic) {
		t.Errorf("round trip = %q, want %q", decoded, topic)
	}
}

func TestTopicLayers(t *testing.T) {
	topic := MustNew("a/bb/ccc")
	layers := topic.Layers()
	want := []string{"a", "bb", "ccc"}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %d layers, want %d", len(layers), len(want))
	}
	for i := range want {
		if string(layers[i]) != want[i] {
			t.Errorf("Layers()[%d] = %q, want %q", i, layers[i], want[i])
		}
	}
}

func TestLayerOutOfRangePanics(t *testing.T) {
	topic := MustNew("a/b")
	defer func() {
		if recover() == nil {
			t.Error("Layer(2) did not panic")
		}
	}()
	_ = topic.Layer(2)
}

func TestLayerDoesNotExposeNeighbours(t *testing.T) {
	topic := MustNew("ab/cd")
	layer := topic.Layer(0)
	if cap(layer) != 2 {
		t.Errorf("cap(Layer(0)) = %d, want 2", cap(layer))
	}
}

func TestZeroTopic(t *testing.T) {
	var topic Topic
	if !topic.IsZero() {
		t.Error("zero Topic is not IsZero")
	}
	if MustNew("a").IsZero() {
		t.Error("valid Topic reports IsZero")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic")
		}
	}()
	MustNew("a/+")
}
