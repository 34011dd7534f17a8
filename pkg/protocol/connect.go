package protocol

import (
	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

// AuthType identifies the credential scheme of a CONNECT auth section.
type AuthType uint8

const (
	AuthTypePassword AuthType = 0x01
	AuthTypeJWT      AuthType = 0x02
)

// String returns the scheme name.
func (t AuthType) String() string {
	switch t {
	case AuthTypePassword:
		return "password"
	case AuthTypeJWT:
		return "jwt"
	default:
		return "unknown"
	}
}

// Auth is the credential carried by CONNECT: *PasswordAuth or *JWTAuth.
type Auth interface {
	Type() AuthType
	encodeTo(e *wire.Encoder)
}

// PasswordAuth is username/password authentication.
// Wire layout: [username p8][password p8]
type PasswordAuth struct {
	Username []byte
	Password []byte
}

// Type returns AuthTypePassword.
func (*PasswordAuth) Type() AuthType { return AuthTypePassword }

func (a *PasswordAuth) encodeTo(e *wire.Encoder) {
	e.WritePrefixed8(a.Username)
	e.WritePrefixed8(a.Password)
}

// JWTAuth is token authentication.
// Wire layout: [token p16]
type JWTAuth struct {
	Token []byte
}

// Type returns AuthTypeJWT.
func (*JWTAuth) Type() AuthType { return AuthTypeJWT }

func (a *JWTAuth) encodeTo(e *wire.Encoder) {
	e.WritePrefixed16(a.Token)
}

// Connect is the client's handshake message.
//
// Wire layout:
//
//	[version u8]
//	if FlagAuth: [auth_type u8][auth_len varint][auth payload]
//
// FlagVerbose carries no bytes.
type Connect struct {
	Version uint8
	Verbose bool
	Auth    Auth // nil when no credentials are sent
}

func (*Connect) message() {}

// Command returns CommandConnect.
func (*Connect) Command() Command { return CommandConnect }

// Flags reports FlagVerbose and FlagAuth.
func (m *Connect) Flags() Flags {
	var f Flags
	if m.Verbose {
		f |= FlagVerbose
	}
	if m.Auth != nil {
		f |= FlagAuth
	}
	return f
}

// EncodeTo writes the CONNECT payload.
func (m *Connect) EncodeTo(e *wire.Encoder) {
	e.WriteUint8(m.Version)
	if m.Auth == nil {
		return
	}

	auth := wire.NewEncoder()
	m.Auth.encodeTo(auth)
	if err := auth.Err(); err != nil {
		e.Fail(err)
		return
	}
	e.WriteUint8(uint8(m.Auth.Type()))
	e.WriteVarintBytes(auth.Bytes())
}

func decodeConnect(flags Flags, d *wire.Decoder) (Message, error) {
	version, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	m := &Connect{
		Version: version,
		Verbose: flags.Has(FlagVerbose),
	}
	if !flags.Has(FlagAuth) {
		return m, nil
	}

	m.Auth, err = decodeAuth(d)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// decodeAuth reads the auth type and its length-delimited payload.
// The payload is consumed before the type is checked, and bytes left over
// inside the auth payload are ignored.
func decodeAuth(d *wire.Decoder) (Auth, error) {
	kind, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	payload, err := d.ReadVarintBytes()
	if err != nil {
		return nil, err
	}
	ad := wire.NewDecoder(payload)

	switch AuthType(kind) {
	case AuthTypePassword:
		username, err := ad.ReadPrefixed8()
		if err != nil {
			return nil, err
		}
		password, err := ad.ReadPrefixed8()
		if err != nil {
			return nil, err
		}
		return &PasswordAuth{Username: username, Password: password}, nil
	case AuthTypeJWT:
		token, err := ad.ReadPrefixed16()
		if err != nil {
			return nil, err
		}
		return &JWTAuth{Token: token}, nil
	default:
		return nil, &UnknownAuthTypeError{Byte: kind}
	}
}
