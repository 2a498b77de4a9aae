// Package preview produces the instant, low-fidelity PDF shown while a LaTeX
// resume waits for a full compile. Everything here is pure: the same source
// and tokens always give the same bytes.
package preview

// Result is what a preview hands back to the UI or the render service.
type Result struct {
	PDFDataURL string `json:"pdfDataUrl"`
	Excerpt    string `json:"excerpt"`
	Tokens     Tokens `json:"tokens"`
	PDF        []byte `json:"-"`
}

// Available reports whether the data URI could be produced.
func (r Result) Available() bool { return r.PDFDataURL != "" }

// Generator resolves tokens against its defaults and builds previews.
type Generator struct {
	Defaults Tokens
	Encode   Encoder
}

// NewGenerator returns a Generator using the standard base64 encoder.
func NewGenerator(defaults Tokens) *Generator {
	return &Generator{Defaults: defaults, Encode: Base64Encoder}
}

// Generate runs excerpt extraction, PDF assembly and data URI encoding.
func (g *Generator) Generate(latex string, overrides Tokens) Result {
	tokens := ResolveTokens(overrides, g.Defaults)
	excerpt := Excerpt(latex)
	pdf := Assemble(excerpt, tokens)
	return Result{
		PDFDataURL: EncodeDataURL(pdf, g.Encode),
		Excerpt:    excerpt,
		Tokens:     tokens,
		PDF:        pdf,
	}
}

// Generate builds a preview with DefaultTokens.
func Generate(latex string, overrides Tokens) Result {
	return NewGenerator(DefaultTokens()).Generate(latex, overrides)
}
