package preview

import (
	"fmt"

	"resume-renderer/pkg/pdfwriter"
)

// BannerLine is the first line drawn on every preview page.
const BannerLine = "Resume preview rendered"

// Page layout in PDF points on a US Letter page.
const (
	pageWidth  = 612
	pageHeight = 792
	fontSize   = 14
	textX      = 100
	textY      = 740
	leading    = 22
)

// Object ids are fixed by the order they are written.
const (
	catalogID = iota + 1
	pagesID
	pageID
	contentID
	fontID
)

// Assemble writes the single-page preview: Catalog, Pages, Page, the text
// content stream and a Type1 Helvetica font, in that order.
func Assemble(excerpt string, tokens Tokens) []byte {
	text := &pdfwriter.TextBlock{Font: "F1", Size: fontSize, X: textX, Y: textY, Leading: leading}
	text.Line(BannerLine).
		Line("Candidate: " + tokens.Candidate).
		Line("Role: " + tokens.Role).
		Line("Workspace: " + tokens.Workspace).
		Line("Excerpt: " + excerpt)

	w := pdfwriter.New(pdfwriter.Version1_4)
	w.AddDict(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesID))
	w.AddDict(fmt.Sprintf("<< /Type /Pages /Count 1 /Kids [%d 0 R] >>", pageID))
	w.AddDict(fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
		pagesID, pageWidth, pageHeight, contentID, fontID))
	w.AddStream(text.Bytes())
	w.AddDict("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	w.SetRoot(catalogID)
	return w.Finish()
}
