package preview

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDataURL(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%%EOF")
	got := EncodeDataURL(pdf, Base64Encoder)
	if !strings.HasPrefix(got, DataURLPrefix) {
		t.Fatalf("missing prefix: %q", got)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, DataURLPrefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(pdf) {
		t.Fatalf("round trip mismatch: %q", decoded)
	}
}

func TestEncodeDataURLDegrades(t *testing.T) {
	failing := func([]byte) (string, error) { return "", errors.New("no base64 here") }
	if got := EncodeDataURL([]byte("x"), failing); got != "" {
		t.Fatalf("failing encoder produced %q", got)
	}
	if got := EncodeDataURL([]byte("x"), nil); got != "" {
		t.Fatalf("nil encoder produced %q", got)
	}
}
