package protocol

import (
	"fmt"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// Role is the side of a connection a codec serves.
type Role uint8

const (
	RoleServer Role = iota + 1
	RoleClient
)

// String returns "server" or "client".
func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

// ParseRole parses "server" or "client".
func ParseRole(s string) (Role, error) {
	switch s {
	case "server":
		return RoleServer, nil
	case "client":
		return RoleClient, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Limits bounds what a codec accepts when decoding.
//
// The zero value checks remaining lengths strictly and imposes no frame size
// limit.
type Limits struct {
	// MaxFrameSize is the largest accepted remaining length. 0 means no limit
	// beyond what the varint can express.
	MaxFrameSize uint32

	// Lenient decodes the payload from every byte after the fixed header and
	// ignores the declared remaining length.
	Lenient bool
}

// DefaultLimits is strict and accepts any frame the header can describe.
var DefaultLimits = Limits{MaxFrameSize: wire.MaxVarint}

func (l Limits) allows(n uint32) bool {
	return l.MaxFrameSize == 0 || n <= l.MaxFrameSize
}

// Option configures a codec.
type Option func(*codecConfig)

type codecConfig struct {
	limits Limits
}

// WithLimits sets the decode limits.
func WithLimits(l Limits) Option {
	return func(c *codecConfig) {
		c.limits = l
	}
}

func newConfig(opts []Option) codecConfig {
	c := codecConfig{limits: DefaultLimits}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Codec encodes the messages one role sends and decodes the messages it
// receives. Implementations are safe for concurrent use.
type Codec interface {
	Role() Role
	Encode(m Message) ([]byte, error)
	Decode(frame []byte) (Message, error)
}

var (
	serverDecoders = map[Command]decodeFunc{
		CommandConnect: decodeConnect,
		CommandPub:     decodePub,
		CommandSub:     decodeSub,
		CommandUnsub:   decodeUnsub,
	}
	clientDecoders = map[Command]decodeFunc{
		CommandInfo: decodeInfo,
		CommandMsg:  decodeMsg,
	}
)

// ServerCodec encodes INFO and MSG and decodes CONNECT, PUB, SUB and UNSUB.
type ServerCodec struct {
	limits Limits
}

// NewServerCodec creates a server-side codec.
func NewServerCodec(opts ...Option) *ServerCodec {
	return &ServerCodec{limits: newConfig(opts).limits}
}

// Role returns RoleServer.
func (*ServerCodec) Role() Role { return RoleServer }

// Encode frames m. Messages a server never sends fail with ErrWrongDirection
// and a nil message fails with ErrNilMessage.
func (c *ServerCodec) Encode(m Message) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	switch m.(type) {
	case *Info, *Msg:
		return EncodeFrame(m)
	default:
		return nil, fmt.Errorf("%w: server cannot send %s", ErrWrongDirection, m.Command())
	}
}

// Decode parses one frame sent by a client.
func (c *ServerCodec) Decode(frame []byte) (Message, error) {
	return decodeFrame(frame, serverDecoders, c.limits)
}

// ClientCodec encodes CONNECT, PUB, SUB and UNSUB and decodes INFO and MSG.
type ClientCodec struct {
	limits Limits
}

// NewClientCodec creates a client-side codec.
func NewClientCodec(opts ...Option) *ClientCodec {
	return &ClientCodec{limits: newConfig(opts).limits}
}

// Role returns RoleClient.
func (*ClientCodec) Role() Role { return RoleClient }

// Encode frames m. Messages a client never sends fail with ErrWrongDirection
// and a nil message fails with ErrNilMessage.
func (c *ClientCodec) Encode(m Message) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilMessage
	}
	switch m.(type) {
	case *Connect, *Pub, *Sub, *Unsub:
		return EncodeFrame(m)
	default:
		return nil, fmt.Errorf("%w: client cannot send %s", ErrWrongDirection, m.Command())
	}
}

// Decode parses one frame sent by a server.
func (c *ClientCodec) Decode(frame []byte) (Message, error) {
	return decodeFrame(frame, clientDecoders, c.limits)
}

// NewCodec returns the codec for role.
func NewCodec(role Role, opts ...Option) (Codec, error) {
	switch role {
	case RoleServer:
		return NewServerCodec(opts...), nil
	case RoleClient:
		return NewClientCodec(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, role)
	}
}

// Encode frames m for role with default limits.
func Encode(role Role, m Message) ([]byte, error) {
	c, err := NewCodec(role)
	if err != nil {
		return nil, err
	}
	return c.Encode(m)
}

// Decode parses frame for role with default limits.
func Decode(role Role, frame []byte) (Message, error) {
	c, err := NewCodec(role)
	if err != nil {
		return nil, err
	}
	return c.Decode(frame)
}

func decodeFrame(frame []byte, decoders map[Command]decodeFunc, limits Limits) (Message, error) {
	d := wire.NewDecoder(frame)
	h, err := DecodeFixedHeader(d)
	if err != nil {
		return nil, err
	}
	headerLen := d.Position()
	if !limits.allows(h.RemainingLength) {
		return nil, fmt.Errorf("%w: remaining length %d exceeds %d", ErrFrameTooLarge, h.RemainingLength, limits.MaxFrameSize)
	}

	decode, ok := decoders[h.Command]
	if !ok {
		return nil, &UnsupportedCommandError{Command: h.Command}
	}

	if limits.Lenient {
		m, err := decode(h.Flags, wire.NewDecoder(d.Rest()))
		if err != nil {
			return nil, fmt.Errorf("protocol: decode %s: %w", h.Command, err)
		}
		return m, nil
	}

	payload, err := d.ReadBytes(int(h.RemainingLength))
	if err != nil {
		return nil, fmt.Errorf("protocol: decode %s: %w", h.Command, err)
	}
	if !d.EOF() {
		return nil, &LengthMismatchError{Declared: h.RemainingLength, Actual: len(frame) - headerLen}
	}

	pd := wire.NewDecoder(payload)
	m, err := decode(h.Flags, pd)
	if err != nil {
		return nil, fmt.Errorf("protocol: decode %s: %w", h.Command, err)
	}
	if !pd.EOF() {
		return nil, &LengthMismatchError{Declared: h.RemainingLength, Actual: pd.Position()}
	}
	return m, nil
}
