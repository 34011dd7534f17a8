package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// ReadFrame reads exactly one frame from an ordered byte stream and returns
// it as a contiguous buffer ready for Decode.
//
// The command nibble and the size limit are checked before the payload is
// allocated. ReadFrame returns io.EOF when the stream ends cleanly between
// frames and io.ErrUnexpectedEOF when it ends inside one.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var header [MaxFixedHeaderLen]byte
	if _, err := io.ReadFull(r, header[:1]); err != nil {
		return nil, err
	}
	if _, err := ParseCommand(header[0] >> commandShift); err != nil {
		return nil, err
	}

	n := 1
	for {
		if n == MaxFixedHeaderLen {
			return nil, wire.ErrVarintOverflow
		}
		if _, err := io.ReadFull(r, header[n:n+1]); err != nil {
			return nil, unexpectedEOF(err)
		}
		n++
		if header[n-1]&0x80 == 0 {
			break
		}
	}

	length, _, err := wire.Varint(header[1:n])
	if err != nil {
		return nil, err
	}
	if !limits.allows(length) {
		return nil, fmt.Errorf("%w: remaining length %d exceeds %d", ErrFrameTooLarge, length, limits.MaxFrameSize)
	}

	frame := make([]byte, n+int(length))
	copy(frame, header[:n])
	if _, err := io.ReadFull(r, frame[n:]); err != nil {
		return nil, unexpectedEOF(err)
	}
	return frame, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// WriteFrame writes one encoded frame to w.
func WriteFrame(w io.Writer, frame []byte) error {
	_, err := w.Write(frame)
	return err
}

// WriteMessage encodes m with c and writes the frame to w.
func WriteMessage(w io.Writer, c Codec, m Message) error {
	frame, err := c.Encode(m)
	if err != nil {
		return err
	}
	return WriteFrame(w, frame)
}

// FrameReader reads successive frames from a stream and decodes them with
// a codec.
type FrameReader struct {
	r      io.Reader
	codec  Codec
	limits Limits
}

// NewFrameReader creates a FrameReader. limits bounds the frames read from r
// and should match the limits c was created with.
func NewFrameReader(r io.Reader, c Codec, limits Limits) *FrameReader {
	return &FrameReader{r: r, codec: c, limits: limits}
}

// Next reads and decodes the next frame. It returns io.EOF at the end of
// the stream.
func (fr *FrameReader) Next() (Message, error) {
	frame, err := ReadFrame(fr.r, fr.limits)
	if err != nil {
		return nil, err
	}
	return fr.codec.Decode(frame)
}
