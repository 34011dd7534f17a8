package wire

const (
	// MaxVarintLen is the maximum number of bytes a varint can occupy.
	MaxVarintLen = 4

	// MaxVarint is the largest value a 4-group varint can carry (28 bits).
	MaxVarint = 1<<(7*MaxVarintLen) - 1

	varintDataMask     = 0x7F
	varintContinuation = 0x80
	varintDataBits     = 7
)

// AppendVarint appends v to dst as a varint and returns the extended slice.
// Values above MaxVarint fail with a FieldTooLongError and leave dst unchanged.
func AppendVarint(dst []byte, v uint32) ([]byte, error) {
	if v > MaxVarint {
		return dst, &FieldTooLongError{Field: "varint", Len: int(v), Max: MaxVarint}
	}
	for v >= varintContinuation {
		dst = append(dst, byte(v&varintDataMask)|varintContinuation)
		v >>= varintDataBits
	}
	return append(dst, byte(v)), nil
}

// Varint decodes a varint from the start of buf.
// Returns the value and the number of bytes consumed.
func Varint(buf []byte) (uint32, int, error) {
	var v uint32
	var shift uint

	for i := 0; i < MaxVarintLen; i++ {
		if i >= len(buf) {
			return 0, 0, shortBuffer(1, 0)
		}
		b := buf[i]
		v |= uint32(b&varintDataMask) << shift
		if b&varintContinuation == 0 {
			return v, i + 1, nil
		}
		shift += varintDataBits
	}
	return 0, 0, ErrVarintOverflow
}

// VarintLen returns the number of bytes needed to encode v.
// The result for values above MaxVarint is meaningless.
func VarintLen(v uint32) int {
	n := 1
	for v >= varintContinuation {
		n++
		v >>= varintDataBits
	}
	return n
}

// Length limits of the prefixed byte string fields.
const (
	MaxPrefixed8  = 0xFF
	MaxPrefixed16 = 0xFFFF
)
