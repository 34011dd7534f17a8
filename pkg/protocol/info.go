package protocol

import "github.com/ShigekuniWork/ocypode/pkg/wire"

// Capability bits of the INFO capability byte.
const (
	capAuthRequired byte = 0x01
	capHeaders      byte = 0x02
)

// Info is sent by the server right after a connection is established.
//
// Wire layout:
//
//	[version u8][max_payload u32][server_id p8][server_name p8][capabilities u8]
type Info struct {
	Version          uint8
	MaxPayload       uint32
	ServerID         []byte
	ServerName       []byte
	AuthRequired     bool
	HeadersSupported bool
}

func (*Info) message() {}

// Command returns CommandInfo.
func (*Info) Command() Command { return CommandInfo }

// Flags returns 0; INFO has no optional sections.
func (*Info) Flags() Flags { return 0 }

// EncodeTo writes the INFO payload.
func (m *Info) EncodeTo(e *wire.Encoder) {
	e.WriteUint8(m.Version)
	e.WriteUint32(m.MaxPayload)
	e.WritePrefixed8(m.ServerID)
	e.WritePrefixed8(m.ServerName)

	var caps byte
	if m.AuthRequired {
		caps |= capAuthRequired
	}
	if m.HeadersSupported {
		caps |= capHeaders
	}
	e.WriteUint8(caps)
}

func decodeInfo(_ Flags, d *wire.Decoder) (Message, error) {
	version, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	maxPayload, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	serverID, err := d.ReadPrefixed8()
	if err != nil {
		return nil, err
	}
	serverName, err := d.ReadPrefixed8()
	if err != nil {
		return nil, err
	}
	caps, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}

	return &Info{
		Version:          version,
		MaxPayload:       maxPayload,
		ServerID:         serverID,
		ServerName:       serverName,
		AuthRequired:     caps&capAuthRequired != 0,
		HeadersSupported: caps&capHeaders != 0,
	}, nil
}
