// Package wire implements the byte-level primitives of the Ocypode protocol.
//
// Every command payload is built from a handful of field shapes:
//
//   - Fixed-width integers: uint8, uint16, uint32, big-endian
//   - Varint: 1-4 little-endian groups of 7 bits, MSB set when another group follows
//   - Prefixed8: 1-byte length followed by up to 255 bytes
//   - Prefixed16: 2-byte big-endian length followed by up to 65535 bytes
//
// The varint is capped at four groups, so the largest representable value is
// MaxVarint (268,435,455). A fifth group is a protocol violation, not a longer
// number.
//
// Decoder reads from a byte slice with a cursor and never reads past the end
// of the slice. Byte slices it returns alias the input buffer.
//
// Encoder appends to a growing buffer. Values that do not fit their field are
// not truncated; the first such value is recorded and reported by Err.
package wire
