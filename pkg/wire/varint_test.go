package wire

import (
	"errors"
	"testing"
)

func TestAppendDecodeVarint(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		bytes int // expected encoded length
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"max_1byte", 127, 1},
		{"min_2byte", 128, 2},
		{"max_2byte", 16383, 2},
		{"min_3byte", 16384, 3},
		{"max_3byte", 2097151, 3},
		{"min_4byte", 2097152, 4},
		{"max", MaxVarint, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := AppendVarint(nil, tc.value)
			if err != nil {
				t.Fatalf("AppendVarint(%d) error = %v", tc.value, err)
			}
			if len(buf) != tc.bytes {
				t.Errorf("AppendVarint(%d) = %d bytes, want %d", tc.value, len(buf), tc.bytes)
			}
			if buf[len(buf)-1]&varintContinuation != 0 {
				t.Errorf("final group of %d has continuation bit set", tc.value)
			}

			decoded, read, err := Varint(buf)
			if err != nil {
				t.Fatalf("Varint() error = %v", err)
			}
			if read != len(buf) {
				t.Errorf("Varint read %d bytes, want %d", read, len(buf))
			}
			if decoded != tc.value {
				t.Errorf("Varint = %d, want %d", decoded, tc.value)
			}
			if got := VarintLen(tc.value); got != tc.bytes {
				t.Errorf("VarintLen(%d) = %d, want %d", tc.value, got, tc.bytes)
			}
		})
	}
}

func TestVarintKnownEncodings(t *testing.T) {
	tests := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{MaxVarint, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tc := range tests {
		got, err := AppendVarint(nil, tc.value)
		if err != nil {
			t.Fatalf("AppendVarint(%d) error = %v", tc.value, err)
		}
		if string(got) != string(tc.want) {
			t.Errorf("AppendVarint(%d) = % x, want % x", tc.value, got, tc.want)
		}
	}
}

func TestVarintOverflow(t *testing.T) {
	// Continuation bit set on the 4th byte.
	_, _, err := Varint([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	if !errors.Is(err, ErrVarintOverflow) {
		t.Fatalf("Varint() error = %v, want ErrVarintOverflow", err)
	}

	// Overflow is detected without a 5th byte being present.
	_, _, err = Varint([]byte{0x80, 0x80, 0x80, 0x80})
	if !errors.Is(err, ErrVarintOverflow) {
		t.Fatalf("Varint() error = %v, want ErrVarintOverflow", err)
	}
}

func TestVarintTruncated(t *testing.T) {
	tests := [][]byte{
		{},
		{0x80},
		{0xFF, 0xFF},
		{0xFF, 0xFF, 0xFF},
	}
	for _, buf := range tests {
		_, _, err := Varint(buf)
		var short *ShortBufferError
		if !errors.As(err, &short) {
			t.Errorf("Varint(% x) error = %v, want ShortBufferError", buf, err)
			continue
		}
		if short.Expected != 1 || short.Actual != 0 {
			t.Errorf("Varint(% x) = %+v, want {1 0}", buf, short)
		}
	}
}

func TestAppendVarintTooLarge(t *testing.T) {
	dst := []byte{0xAA}
	got, err := AppendVarint(dst, MaxVarint+1)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("AppendVarint() error = %v, want ErrFieldTooLong", err)
	}
	if len(got) != 1 {
		t.Errorf("AppendVarint() modified dst on error: % x", got)
	}
}
