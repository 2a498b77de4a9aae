package preview

import "strings"

// Sanitize maps every rune outside printable ASCII (0x20-0x7E) to a space,
// collapses whitespace runs and trims the result. PDF literal strings in the
// preview are single-byte Helvetica text, so nothing wider survives.
func Sanitize(text string) string {
	b := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 0x20 || r > 0x7e {
			b = append(b, ' ')
			continue
		}
		b = append(b, byte(r))
	}
	return strings.Join(strings.Fields(string(b)), " ")
}
