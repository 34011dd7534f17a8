package protocol

import "github.com/ShigekuniWork/ocypode/pkg/wire"

const (
	commandShift = 4
	flagsMask    = 0x0F

	// MinFixedHeaderLen is the size of a header with a 1-byte remaining length.
	MinFixedHeaderLen = 2

	// MaxFixedHeaderLen is the size of a header with a 4-byte remaining length.
	MaxFixedHeaderLen = 1 + wire.MaxVarintLen
)

// FixedHeader is present at the start of every frame.
//
// Wire layout:
//
//	Byte 0:      upper 4 bits command, lower 4 bits flags
//	Bytes 1..4:  remaining length (varint)
type FixedHeader struct {
	Command         Command
	Flags           Flags
	RemainingLength uint32
}

// DecodeFixedHeader reads a fixed header from a decoder.
func DecodeFixedHeader(d *wire.Decoder) (FixedHeader, error) {
	if d.Remaining() < MinFixedHeaderLen {
		return FixedHeader{}, &wire.ShortBufferError{Expected: MinFixedHeaderLen, Actual: d.Remaining()}
	}

	first, err := d.ReadUint8()
	if err != nil {
		return FixedHeader{}, err
	}
	cmd, err := ParseCommand(first >> commandShift)
	if err != nil {
		return FixedHeader{}, err
	}

	length, err := d.ReadVarint()
	if err != nil {
		return FixedHeader{}, err
	}

	return FixedHeader{
		Command:         cmd,
		Flags:           Flags(first & flagsMask),
		RemainingLength: length,
	}, nil
}

// EncodeTo writes the header using the provided encoder.
func (h FixedHeader) EncodeTo(e *wire.Encoder) {
	e.WriteUint8(byte(h.Command)<<commandShift | byte(h.Flags)&flagsMask)
	e.WriteVarint(h.RemainingLength)
}

// Len returns the encoded size of the header in bytes.
func (h FixedHeader) Len() int {
	return 1 + wire.VarintLen(h.RemainingLength)
}
