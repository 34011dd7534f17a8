// Package protocol implements the Ocypode binary wire protocol.
//
// Ocypode is a publish-subscribe protocol in the NATS/MQTT family. Clients
// connect, publish to topics and subscribe to topic filters; the server
// describes itself and delivers matching messages.
//
// # Wire Format
//
// Every message is one frame: a 2-5 byte fixed header followed by the
// command payload.
//
//	┌──────────────────────┬───────────────────────────┬──────────────────────┐
//	│ Command  │ Flags     │ Remaining Length          │ Payload              │
//	│ (4 bits) │ (4 bits)  │ (varint, 1-4 bytes)       │ (Remaining Length)   │
//	└──────────────────────┴───────────────────────────┴──────────────────────┘
//
// The flags nibble tells the payload decoder which optional sections follow,
// so no look-ahead is needed.
//
// # Commands
//
//   - INFO (0x1): Server → Client, server identity and capabilities
//   - CONNECT (0x2): Client → Server, version, verbose mode, credentials
//   - PUB (0x3): Client → Server, publish to a topic
//   - SUB (0x4): Client → Server, subscribe to a topic filter
//   - UNSUB (0x5): Client → Server, end a subscription
//   - MSG (0x6): Server → Client, deliver a published message
//   - PING, PONG, OK, ERR (0x7-0xA): reserved, no payload codec yet
//
// # Payload Layouts
//
//	INFO     [version u8][max_payload u32][server_id p8][server_name p8][capabilities u8]
//	CONNECT  [version u8]{auth: [type u8][len varint][credentials]}
//	PUB      [topic p16]{reply_to: [topic p16]}{headers: [block p16]}[payload varint-prefixed]
//	SUB      [filter p16][subscription_id p16]{queue_group: [p8]}
//	UNSUB    [subscription_id p16]
//	MSG      [topic p16][subscription_id p16]{reply_to: [topic p16]}{headers: [block p16]}[payload varint-prefixed]
//
// Sections in braces are present only when the matching flag bit is set.
// Field primitives are described in package wire; topics in package topic.
//
// # Directions
//
// Client and server are different trust domains. ServerCodec encodes only
// INFO and MSG and decodes only CONNECT, PUB, SUB and UNSUB. ClientCodec is
// the mirror image. Encoding a message in the wrong direction fails with
// ErrWrongDirection; decoding a known command the role does not accept fails
// with an UnsupportedCommandError.
//
// # Usage Example
//
//	// Client side
//	frame, err := protocol.NewClientCodec().Encode(&protocol.Pub{
//	    Topic:   topic.MustNew("sensor/temperature"),
//	    Payload: []byte("21.5"),
//	})
//
//	// Server side
//	msg, err := protocol.NewServerCodec().Decode(frame)
//	if err != nil {
//	    // Protocol violation: drop the connection
//	}
//	pub := msg.(*protocol.Pub)
//
// Decoded messages alias the frame buffer. Do not reuse the buffer while the
// message is in use.
//
// # Streams
//
// ReadFrame cuts one frame out of an ordered byte stream, such as a QUIC
// stream, and FrameReader decodes successive frames with a codec.
// WriteMessage is the encoding counterpart.
//
// # Length Checking
//
// By default the payload codec runs on exactly Remaining Length bytes and any
// byte it does not consume, or any byte after the frame, fails the decode
// with a LengthMismatchError. Limits.Lenient disables both checks.
package protocol
