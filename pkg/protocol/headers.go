package protocol

import (
	"bytes"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// HeaderEntry is one key/value pair of a Headers block.
type HeaderEntry struct {
	Key   []byte
	Value []byte
}

// Headers is the ordered key/value metadata carried by PUB and MSG.
//
// Insertion order is preserved and duplicate keys are permitted, so Headers
// is a slice rather than a map. Whether the first or every value of a key
// matters is up to the consumer.
//
// Wire format per entry: [key p8][value p16]. Entries are packed back to back
// with no count; the enclosing message writes a p16 length around the block.
type Headers struct {
	entries []HeaderEntry
}

// NewHeaders creates an empty Headers block.
func NewHeaders() *Headers {
	return &Headers{}
}

// Add appends an entry. Duplicate keys are allowed.
func (h *Headers) Add(key, value []byte) *Headers {
	h.entries = append(h.entries, HeaderEntry{Key: key, Value: value})
	return h
}

// AddString appends an entry from strings.
func (h *Headers) AddString(key, value string) *Headers {
	return h.Add([]byte(key), []byte(value))
}

// Entries returns all entries in insertion order.
func (h *Headers) Entries() []HeaderEntry {
	if h == nil {
		return nil
	}
	return h.entries
}

// Len returns the number of entries.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Get returns the value of the first entry with the given key.
func (h *Headers) Get(key string) ([]byte, bool) {
	for _, entry := range h.Entries() {
		if string(entry.Key) == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Values returns the values of every entry with the given key, in order.
func (h *Headers) Values(key string) [][]byte {
	var out [][]byte
	for _, entry := range h.Entries() {
		if string(entry.Key) == key {
			out = append(out, entry.Value)
		}
	}
	return out
}

// Equal reports whether h and o hold the same entries in the same order.
func (h *Headers) Equal(o *Headers) bool {
	a, b := h.Entries(), o.Entries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i].Key, b[i].Key) || !bytes.Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// encodeTo writes every entry without a length prefix.
func (h *Headers) encodeTo(e *wire.Encoder) {
	for _, entry := range h.Entries() {
		e.WritePrefixed8(entry.Key)
		e.WritePrefixed16(entry.Value)
	}
}

// encodeBlockTo writes the block wrapped in a p16 length prefix.
func (h *Headers) encodeBlockTo(e *wire.Encoder) {
	block := wire.NewEncoder()
	h.encodeTo(block)
	if err := block.Err(); err != nil {
		e.Fail(err)
		return
	}
	e.WritePrefixed16(block.Bytes())
}

// decodeHeaders reads entries until block is exhausted.
// block must be pre-sliced to exactly the declared block size.
func decodeHeaders(block []byte) (*Headers, error) {
	d := wire.NewDecoder(block)
	h := &Headers{}
	for !d.EOF() {
		key, err := d.ReadPrefixed8()
		if err != nil {
			return nil, err
		}
		value, err := d.ReadPrefixed16()
		if err != nil {
			return nil, err
		}
		h.entries = append(h.entries, HeaderEntry{Key: key, Value: value})
	}
	return h, nil
}

// decodeHeadersBlock reads a p16 headers block from d.
func decodeHeadersBlock(d *wire.Decoder) (*Headers, error) {
	block, err := d.ReadPrefixed16()
	if err != nil {
		return nil, err
	}
	return decodeHeaders(block)
}
