package preview

import (
	"regexp"
	"strings"
)

const (
	documentBegin = `\begin{document}`
	documentEnd   = `\end{document}`

	// MaxExcerptLen bounds the excerpt returned to callers and drawn in the PDF.
	MaxExcerptLen = 240
	// EllipsisMarker ends an excerpt that was cut at MaxExcerptLen.
	EllipsisMarker = "..."
	// EmptyExcerpt replaces a body with no readable text.
	EmptyExcerpt = "No LaTeX content provided."
)

var (
	lineComment = regexp.MustCompile(`%.*`)
	defineColor = regexp.MustCompile(`\\definecolor\{[^}]+\}\{[^}]+\}\{[^}]+\}`)
	htmlColor   = regexp.MustCompile(`\bHTML\s+[0-9A-Fa-f]{4,}\b`)
	// name, optional star, optional [option], optional single {argument}
	command = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?(?:\{([^}]*)\})?`)
	braces  = regexp.MustCompile(`[{}]`)
)

// documentBody returns the text between the document markers, or the whole
// input when there is no begin marker. Both markers are located in the whole
// input, so an end marker that precedes the begin marker yields no body.
func documentBody(latex string) string {
	start := strings.Index(latex, documentBegin)
	if start < 0 {
		return latex
	}
	from := start + len(documentBegin)
	end := strings.Index(latex, documentEnd)
	switch {
	case end < 0:
		return latex[from:]
	case end < from:
		return ""
	}
	return latex[from:end]
}

// ExtractExcerpt strips LaTeX markup from the document body with a single
// lexical pass. Commands keep the text of their first brace argument; a
// command nested inside that argument is not rescanned, so its name and
// braces can leave residue in the output.
func ExtractExcerpt(latex string) string {
	body := documentBody(latex)
	body = lineComment.ReplaceAllString(body, " ")
	body = defineColor.ReplaceAllString(body, " ")
	body = htmlColor.ReplaceAllString(body, " ")
	body = command.ReplaceAllString(body, "${1}")
	body = braces.ReplaceAllString(body, "")
	body = strings.Join(strings.Fields(body), " ")
	if body == "" {
		return EmptyExcerpt
	}
	return body
}

// Excerpt is the sanitized, length-bounded excerpt for latex. When the text
// is cut it ends with EllipsisMarker and is exactly MaxExcerptLen long.
func Excerpt(latex string) string {
	text := Sanitize(ExtractExcerpt(latex))
	if text == "" {
		// only non-printable runes survived the strip
		return EmptyExcerpt
	}
	if len(text) <= MaxExcerptLen {
		return text
	}
	return text[:MaxExcerptLen-len(EllipsisMarker)] + EllipsisMarker
}
