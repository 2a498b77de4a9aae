package preview

import "encoding/base64"

// DataURLPrefix starts every preview data URI.
const DataURLPrefix = "data:application/pdf;base64,"

// Encoder turns document bytes into a base64 payload.
type Encoder func(pdf []byte) (string, error)

// Base64Encoder is the standard-alphabet, padded encoder.
func Base64Encoder(pdf []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(pdf), nil
}

// EncodeDataURL wraps pdf in a data URI. A missing or failing encoder yields
// "" so callers can show "preview unavailable" instead of failing.
func EncodeDataURL(pdf []byte, enc Encoder) string {
	if enc == nil {
		return ""
	}
	payload, err := enc(pdf)
	if err != nil {
		return ""
	}
	return DataURLPrefix + payload
}
