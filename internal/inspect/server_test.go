package inspect

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShigekuniWork/ocypode/internal/config"
	"github.com/ShigekuniWork/ocypode/internal/logging"
	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/ShigekuniWork/ocypode/pkg/topic"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(Options{Logger: logging.Discard(), Limits: protocol.DefaultLimits})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestDecodeBinary(t *testing.T) {
	ts := newTestServer(t)
	frame, err := protocol.NewClientCodec().Encode(&protocol.Pub{
		Topic:   topic.MustNew("sensor/temp"),
		Headers: protocol.NewHeaders().AddString("trace-id", "xyz"),
		Payload: []byte("21.5"),
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	resp, err := http.Post(ts.URL+"/v1/decode?role=server", "application/octet-stream", bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decodeBody[Description](t, resp)
	if got.Command != "PUB" {
		t.Errorf("Command = %q, want PUB", got.Command)
	}
	if got.Fields["topic"] != "sensor/temp" {
		t.Errorf("topic = %v, want sensor/temp", got.Fields["topic"])
	}
	if got.Fields["payload"] != "21.5" {
		t.Errorf("payload = %v, want 21.5", got.Fields["payload"])
	}
}

func TestDecodeHexBody(t *testing.T) {
	ts := newTestServer(t)
	frame, err := protocol.NewServerCodec().Encode(&protocol.Info{Version: 1, ServerID: []byte("srv")})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	body := strings.ToUpper(hex.EncodeToString(frame[:2])) + " " + hex.EncodeToString(frame[2:]) + "\n"

	resp, err := http.Post(ts.URL+"/v1/decode?role=client", "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decodeBody[Description](t, resp)
	if got.Command != "INFO" || got.Fields["server_id"] != "srv" {
		t.Errorf("Description = %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name        string
		query       string
		contentType string
		body        []byte
		status      int
		kind        string
	}{
		{"unsupported", "?role=server", "application/octet-stream", []byte{0x10, 0x00}, http.StatusUnprocessableEntity, "unsupported_command"},
		{"truncated", "?role=server", "application/octet-stream", []byte{0x50, 0x02, 0x00}, http.StatusUnprocessableEntity, "buffer_too_short"},
		{"unknown_command", "", "application/octet-stream", []byte{0xF0, 0x00}, http.StatusUnprocessableEntity, "unknown_command"},
		{"bad_role", "?role=peer", "application/octet-stream", []byte{0x50, 0x00}, http.StatusBadRequest, ""},
		{"bad_hex", "?role=server", "text/plain", []byte("zz"), http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/decode"+tc.query, tc.contentType, bytes.NewReader(tc.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			got := decodeBody[errorResponse](t, resp)
			if got.Kind != tc.kind {
				t.Errorf("kind = %q, want %q", got.Kind, tc.kind)
			}
		})
	}
}

func TestTopicEndpoint(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path     string
		status   int
		layers   int
		wildcard string
	}{
		{"/v1/topics/topic?value=a/b", http.StatusOK, 2, ""},
		{"/v1/topics/filter?value=a/%2B/%23", http.StatusOK, 3, "Both"},
		{"/v1/topics/filter?value=a/b/%23", http.StatusOK, 3, "MultiLayer"},
		{"/v1/topics/topic?value=a/%2B/b", http.StatusUnprocessableEntity, 0, ""},
		{"/v1/topics/filter?value=a/%23/b", http.StatusUnprocessableEntity, 0, ""},
		{"/v1/topics/topic?value=/a", http.StatusUnprocessableEntity, 0, ""},
		{"/v1/topics/route?value=a", http.StatusNotFound, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			if err != nil {
				t.Fatalf("GET error = %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if tc.status != http.StatusOK {
				resp.Body.Close()
				return
			}
			got := decodeBody[TopicDescription](t, resp)
			if len(got.Layers) != tc.layers {
				t.Errorf("layers = %v, want %d", got.Layers, tc.layers)
			}
			if got.Wildcard != tc.wildcard {
				t.Errorf("wildcard = %q, want %q", got.Wildcard, tc.wildcard)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/decode", "application/octet-stream", bytes.NewReader([]byte{0x50, 0x03, 0x00, 0x01, '7'}))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	want := `ocypode_frames_total{command="UNSUB",op="decode",role="server",status="success"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("/metrics missing %q", want)
	}
}

func TestDecodeBodyCapUnlimitedCodec(t *testing.T) {
	s := New(Options{Logger: logging.Discard()})
	want := int64(2*(config.DefaultMaxFrameSize+protocol.MaxFixedHeaderLen) + 1024)
	if got := s.maxBody(); got != want {
		t.Errorf("maxBody() = %d, want %d", got, want)
	}

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	body := bytes.Repeat([]byte{0}, int(want)+1)
	resp, err := http.Post(ts.URL+"/v1/decode", "application/octet-stream", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
}
