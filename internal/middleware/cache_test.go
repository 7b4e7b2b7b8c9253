package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Thing": {"a", "b"}}
	body := []byte(`{"listings":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	if len(gotHdr["X-Thing"]) != 2 {
		t.Fatalf("multi-value header lost: %v", gotHdr["X-Thing"])
	}
	if !bytes.Equal(gotBody, body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodePayloadTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 7)} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("decode accepted %d-byte payload", len(bs))
		}
	}
	// Header length pointing past the buffer must be rejected.
	bad := make([]byte, 12)
	bad[7] = 200
	if _, _, _, ok := decodePayload(bad); ok {
		t.Fatal("decode accepted out-of-range header length")
	}
}
