package protocol

import (
	"testing"

	"github.com/ShigekuniWork/ocypode/pkg/topic"
)

func fuzzSeeds(f *testing.F, sender Codec, messages ...Message) {
	f.Helper()
	for _, m := range messages {
		frame, err := sender.Encode(m)
		if err != nil {
			f.Fatalf("Encode(%s) error = %v", m.Command(), err)
		}
		f.Add(frame)
	}
	f.Add([]byte{})
	f.Add([]byte{0x30})
	f.Add([]byte{0x30, 0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{0xF0, 0x00})
}

// FuzzDecodeServer checks that arbitrary client frames never panic and that
// every decoded message can be encoded again.
func FuzzDecodeServer(f *testing.F) {
	fuzzSeeds(f, NewClientCodec(),
		&Connect{Version: 1, Auth: &JWTAuth{Token: []byte("a.b.c")}},
		&Connect{Version: 1, Verbose: true, Auth: &PasswordAuth{Username: []byte("u"), Password: []byte("p")}},
		&Pub{Topic: topic.MustNew("a/b"), Headers: NewHeaders().AddString("k", "v"), Payload: []byte("x")},
		&Sub{Filter: topic.MustNewFilter("a/+/#"), SubscriptionID: []byte("s1"), QueueGroup: []byte("q")},
		&Unsub{SubscriptionID: []byte("s2")},
	)

	server := NewServerCodec()
	client := NewClientCodec()
	f.Fuzz(func(t *testing.T, frame []byte) {
		m, err := server.Decode(frame)
		if err != nil {
			if m != nil {
				t.Fatalf("Decode() returned a message with error %v", err)
			}
			return
		}
		if _, err := client.Encode(m); err != nil {
			t.Fatalf("re-Encode(%s) error = %v", m.Command(), err)
		}
	})
}

// FuzzDecodeClient checks that arbitrary server frames never panic.
func FuzzDecodeClient(f *testing.F) {
	fuzzSeeds(f, NewServerCodec(),
		&Info{Version: 1, MaxPayload: 1024, ServerID: []byte("id"), ServerName: []byte("n"), AuthRequired: true},
		&Msg{Topic: topic.MustNew("a"), SubscriptionID: []byte("s3"), ReplyTo: topicPtr("r/1"), Payload: []byte("y")},
	)

	server := NewServerCodec()
	client := NewClientCodec()
	f.Fuzz(func(t *testing.T, frame []byte) {
		m, err := client.Decode(frame)
		if err != nil {
			return
		}
		if _, err := server.Encode(m); err != nil {
			t.Fatalf("re-Encode(%s) error = %v", m.Command(), err)
		}
	})
}
