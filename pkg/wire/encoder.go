package wire

// Encoder is a binary encoder that appends data to an internal buffer.
//
// Writes never fail individually. The first value that does not fit its
// field is recorded, the offending write is skipped, and Err reports it.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder creates a new encoder with a default initial capacity.
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0, 64),
	}
}

// NewEncoderWithCap creates a new encoder with the specified initial capacity.
func NewEncoderWithCap(cap int) *Encoder {
	return &Encoder{
		buf: make([]byte, 0, cap),
	}
}

// Reset resets the encoder to empty state, reusing the underlying buffer.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.err = nil
}

// Bytes returns the encoded bytes. The returned slice is valid until
// the next call to Reset or any Write method.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes currently encoded.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Err returns the first oversize-field error, if any.
func (e *Encoder) Err() error {
	return e.err
}

// Fail records err as the encoder's error unless one is already recorded.
// Composite fields built in a child encoder use it to surface the child's error.
func (e *Encoder) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// WriteUint8 appends a single byte.
func (e *Encoder) WriteUint8(v uint8) {
	e.buf = append(e.buf, v)
}

// WriteUint16 appends a uint16 in big-endian byte order.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = append(e.buf, byte(v>>8), byte(v))
}

// WriteUint32 appends a uint32 in big-endian byte order.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = append(e.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteVarint appends a varint using the minimal number of groups.
func (e *Encoder) WriteVarint(v uint32) {
	buf, err := AppendVarint(e.buf, v)
	if err != nil {
		e.Fail(err)
		return
	}
	e.buf = buf
}

// WriteBytes appends raw bytes.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WritePrefixed8 appends a 1-byte length prefix followed by b.
func (e *Encoder) WritePrefixed8(b []byte) {
	if len(b) > MaxPrefixed8 {
		e.Fail(&FieldTooLongError{Field: "prefixed8", Len: len(b), Max: MaxPrefixed8})
		return
	}
	e.buf = append(e.buf, byte(len(b)))
	e.buf = append(e.buf, b...)
}

// WritePrefixed16 appends a 2-byte length prefix followed by b.
func (e *Encoder) WritePrefixed16(b []byte) {
	if len(b) > MaxPrefixed16 {
		e.Fail(&FieldTooLongError{Field: "prefixed16", Len: len(b), Max: MaxPrefixed16})
		return
	}
	e.WriteUint16(uint16(len(b)))
	e.buf = append(e.buf, b...)
}

// WriteVarintBytes appends a varint length followed by b.
func (e *Encoder) WriteVarintBytes(b []byte) {
	if len(b) > MaxVarint {
		e.Fail(&FieldTooLongError{Field: "varint-prefixed", Len: len(b), Max: MaxVarint})
		return
	}
	e.WriteVarint(uint32(len(b)))
	e.buf = append(e.buf, b...)
}
