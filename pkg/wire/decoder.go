package wire

// Decoder reads protocol fields from a byte buffer.
// A failed read leaves the position unchanged.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// Position returns the current read position.
func (d *Decoder) Position() int {
	return d.pos
}

// Rest returns the unread bytes without consuming them.
func (d *Decoder) Rest() []byte {
	return d.buf[d.pos:]
}

// ReadUint8 reads a single byte.
func (d *Decoder) ReadUint8() (uint8, error) {
	if d.Remaining() < 1 {
		return 0, shortBuffer(1, d.Remaining())
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.Remaining() < 2 {
		return 0, shortBuffer(2, d.Remaining())
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint32 reads a uint32 in big-endian byte order.
func (d *Decoder) ReadUint32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, shortBuffer(4, d.Remaining())
	}
	v := uint32(d.buf[d.pos])<<24 | uint32(d.buf[d.pos+1])<<16 |
		uint32(d.buf[d.pos+2])<<8 | uint32(d.buf[d.pos+3])
	d.pos += 4
	return v, nil
}

// ReadVarint reads a varint of at most MaxVarintLen bytes.
func (d *Decoder) ReadVarint() (uint32, error) {
	v, n, err := Varint(d.buf[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

// ReadBytes reads exactly n bytes.
// The returned slice references the decoder's buffer; do not modify.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, shortBuffer(n, d.Remaining())
	}
	b := d.buf[d.pos : d.pos+n : d.pos+n]
	d.pos += n
	return b, nil
}

// ReadPrefixed8 reads a 1-byte length prefix followed by that many bytes.
func (d *Decoder) ReadPrefixed8() ([]byte, error) {
	start := d.pos
	n, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	b, err := d.ReadBytes(int(n))
	if err != nil {
		d.pos = start
		return nil, err
	}
	return b, nil
}

// ReadPrefixed16 reads a 2-byte length prefix followed by that many bytes.
func (d *Decoder) ReadPrefixed16() ([]byte, error) {
	start := d.pos
	n, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	b, err := d.ReadBytes(int(n))
	if err != nil {
		d.pos = start
		return nil, err
	}
	return b, nil
}

// ReadVarintBytes reads a varint length followed by that many bytes.
func (d *Decoder) ReadVarintBytes() ([]byte, error) {
	start := d.pos
	n, err := d.ReadVarint()
	if err != nil {
		return nil, err
	}
	b, err := d.ReadBytes(int(n))
	if err != nil {
		d.pos = start
		return nil, err
	}
	return b, nil
}
