package middleware

import (
	"context"

	"github.com/ShigekuniWork/ocypode/pkg/protocol"
)

// Middleware decorates a codec.
type Middleware func(next protocol.Codec) protocol.Codec

// Chain applies middlewares to c. The first middleware is the outermost.
func Chain(c protocol.Codec, mws ...Middleware) protocol.Codec {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// ContextCodec is a codec that accepts a caller context, used to carry
// trace spans through decorators.
type ContextCodec interface {
	protocol.Codec
	EncodeContext(ctx context.Context, m protocol.Message) ([]byte, error)
	DecodeContext(ctx context.Context, frame []byte) (protocol.Message, error)
}

// EncodeContext encodes m with c, passing ctx along when c accepts one.
func EncodeContext(ctx context.Context, c protocol.Codec, m protocol.Message) ([]byte, error) {
	if cc, ok := c.(ContextCodec); ok {
		return cc.EncodeContext(ctx, m)
	}
	return c.Encode(m)
}

// DecodeContext decodes frame with c, passing ctx along when c accepts one.
func DecodeContext(ctx context.Context, c protocol.Codec, frame []byte) (protocol.Message, error) {
	if cc, ok := c.(ContextCodec); ok {
		return cc.DecodeContext(ctx, frame)
	}
	return c.Decode(frame)
}

// frameCommand reads the command nibble of a frame. ok is false when the
// first byte is missing or names no command.
func frameCommand(frame []byte) (cmd protocol.Command, ok bool) {
	if len(frame) == 0 {
		return 0, false
	}
	cmd, err := protocol.ParseCommand(frame[0] >> 4)
	return cmd, err == nil
}

// messageLabel names the command of m for labels.
func messageLabel(m protocol.Message) string {
	if m == nil {
		return "unknown"
	}
	return m.Command().String()
}

// commandLabel names the command of a frame for labels and attributes.
func commandLabel(frame []byte) string {
	if cmd, ok := frameCommand(frame); ok {
		return cmd.String()
	}
	return "unknown"
}
