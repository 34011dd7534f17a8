package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ShigekuniWork/ocypode/pkg/wire"
)

func TestConnectJWT(t *testing.T) {
	frame, err := NewClientCodec().Encode(&Connect{
		Version: 1,
		Auth:    &JWTAuth{Token: []byte("header.payload.sig")},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	m, err := NewServerCodec().Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	c := m.(*Connect)
	if c.Version != 1 {
		t.Errorf("Version = %d, want 1", c.Version)
	}
	if c.Verbose {
		t.Error("Verbose = true, want false")
	}
	jwt, ok := c.Auth.(*JWTAuth)
	if !ok {
		t.Fatalf("Auth = %T, want *JWTAuth", c.Auth)
	}
	if !bytes.Equal(jwt.Token, []byte("header.payload.sig")) {
		t.Errorf("Token = %q, want %q", jwt.Token, "header.payload.sig")
	}
}

func TestConnectRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		connect *Connect
	}{
		{"bare", &Connect{Version: 1}},
		{"verbose", &Connect{Version: 1, Verbose: true}},
		{"password", &Connect{Version: 2, Auth: &PasswordAuth{Username: []byte("alice"), Password: []byte("s3cret")}}},
		{"empty_password", &Connect{Version: 1, Verbose: true, Auth: &PasswordAuth{Username: []byte("bob")}}},
		{"jwt", &Connect{Version: 1, Auth: &JWTAuth{Token: bytes.Repeat([]byte("t"), 1024)}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := roundTrip(t, NewClientCodec(), NewServerCodec(), tc.connect).(*Connect)
			if got.Version != tc.connect.Version {
				t.Errorf("Version = %d, want %d", got.Version, tc.connect.Version)
			}
			if got.Verbose != tc.connect.Verbose {
				t.Errorf("Verbose = %v, want %v", got.Verbose, tc.connect.Verbose)
			}
			switch want := tc.connect.Auth.(type) {
			case nil:
				if got.Auth != nil {
					t.Errorf("Auth = %v, want nil", got.Auth)
				}
			case *PasswordAuth:
				pw, ok := got.Auth.(*PasswordAuth)
				if !ok {
					t.Fatalf("Auth = %T, want *PasswordAuth", got.Auth)
				}
				if !bytes.Equal(pw.Username, want.Username) || !bytes.Equal(pw.Password, want.Password) {
					t.Errorf("Auth = %q/%q, want %q/%q", pw.Username, pw.Password, want.Username, want.Password)
				}
			case *JWTAuth:
				jwt, ok := got.Auth.(*JWTAuth)
				if !ok {
					t.Fatalf("Auth = %T, want *JWTAuth", got.Auth)
				}
				if !bytes.Equal(jwt.Token, want.Token) {
					t.Errorf("Token length = %d, want %d", len(jwt.Token), len(want.Token))
				}
			}
		})
	}
}

func TestConnectWireFormat(t *testing.T) {
	frame, err := NewClientCodec().Encode(&Connect{
		Version: 1,
		Verbose: true,
		Auth:    &PasswordAuth{Username: []byte("u"), Password: []byte("pw")},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{
		0x23, 8, // CONNECT, verbose|auth, remaining length
		0x01,      // version
		0x01,      // auth type password
		0x05,      // auth length
		0x01, 'u', // username
		0x02, 'p', 'w', // password
	}
	if !bytes.Equal(frame, want) {
		t.Errorf("Encode() = %x, want %x", frame, want)
	}
}

func TestConnectUnknownAuthType(t *testing.T) {
	frame := []byte{0x22, 0x05, 0x01, 0x07, 0x02, 0xAB, 0xCD}
	_, err := NewServerCodec().Decode(frame)
	if !errors.Is(err, ErrUnknownAuthType) {
		t.Fatalf("Decode() error = %v, want ErrUnknownAuthType", err)
	}
	var aerr *UnknownAuthTypeError
	if !errors.As(err, &aerr) || aerr.Byte != 0x07 {
		t.Errorf("UnknownAuthTypeError = %v, want byte 0x07", err)
	}
}

func TestConnectAuthTruncated(t *testing.T) {
	// Auth length claims 4 bytes but the JWT token prefix asks for 16.
	frame := []byte{0x22, 0x07, 0x01, 0x02, 0x04, 0x00, 0x10, 'a', 'b'}
	if _, err := NewServerCodec().Decode(frame); !errors.Is(err, wire.ErrBufferTooShort) {
		t.Errorf("Decode() error = %v, want ErrBufferTooShort", err)
	}
}

func TestConnectAuthTrailingBytes(t *testing.T) {
	// Bytes left inside the auth payload after the token are ignored.
	frame := []byte{0x22, 0x08, 0x01, 0x02, 0x05, 0x00, 0x02, 'o', 'k', 0xFF}
	m, err := NewServerCodec().Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	jwt := m.(*Connect).Auth.(*JWTAuth)
	if string(jwt.Token) != "ok" {
		t.Errorf("Token = %q, want %q", jwt.Token, "ok")
	}
}

func TestAuthTypeString(t *testing.T) {
	if AuthTypePassword.String() != "password" || AuthTypeJWT.String() != "jwt" || AuthType(9).String() != "unknown" {
		t.Error("AuthType.String() mismatch")
	}
}
