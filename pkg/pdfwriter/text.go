package pdfwriter

import (
	"strconv"
	"strings"
)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// EscapeString escapes backslash and parentheses for a PDF literal string.
// Nothing else is escaped, so callers must pass single-byte printable text.
func EscapeString(s string) string {
	return literalEscaper.Replace(s)
}

// TextBlock is a BT/ET text object drawn with one font at a fixed leading.
type TextBlock struct {
	Font    string // resource name without the slash, e.g. "F1"
	Size    int
	X, Y    int
	Leading int // distance between baselines; lines move down by this much
	lines   []string
}

// Line queues one line of text.
func (t *TextBlock) Line(s string) *TextBlock {
	t.lines = append(t.lines, s)
	return t
}

// Bytes renders the content-stream operators:
//
//	BT
//	/F1 14 Tf
//	100 740 Td
//	(first) Tj
//	0 -22 Td
//	(second) Tj
//	ET
func (t *TextBlock) Bytes() []byte {
	var b strings.Builder
	b.WriteString("BT\n/")
	b.WriteString(t.Font)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(t.Size))
	b.WriteString(" Tf\n")
	b.WriteString(strconv.Itoa(t.X))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(t.Y))
	b.WriteString(" Td\n")
	for i, line := range t.lines {
		if i > 0 {
			b.WriteString("0 ")
			b.WriteString(strconv.Itoa(-t.Leading))
			b.WriteString(" Td\n")
		}
		b.WriteByte('(')
		b.WriteString(EscapeString(line))
		b.WriteString(") Tj\n")
	}
	b.WriteString("ET\n")
	return []byte(b.String())
}
