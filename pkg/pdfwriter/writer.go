// Package pdfwriter serializes small PDF documents byte for byte: a version
// header, numbered indirect objects, a classic cross-reference table and a
// trailer. It keeps the offset of every object so the xref section always
// points at the first byte of "<id> 0 obj".
package pdfwriter

import (
	"bytes"
	"fmt"
	"strconv"
)

// Version1_4 is the header version written by New when none is given.
const Version1_4 = "1.4"

// xrefRecordLen is the fixed width of one cross-reference entry including EOL.
const xrefRecordLen = 20

// Object is one indirect object as it was appended to the document.
type Object struct {
	ID   int
	Body []byte
}

// Writer appends indirect objects in id order and finishes the document with
// the xref table and trailer. Object ids are contiguous and start at 1.
type Writer struct {
	buf        bytes.Buffer
	objects    []Object
	offsets    []int
	root       int
	xrefOffset int
	finished   bool
}

// New starts a document with the "%PDF-<version>" header line.
func New(version string) *Writer {
	if version == "" {
		version = Version1_4
	}
	w := &Writer{}
	w.buf.WriteString("%PDF-" + version + "\n")
	return w
}

// NextID reports the id the next AddObject call will assign.
func (w *Writer) NextID() int { return len(w.objects) + 1 }

// AddObject appends "<id> 0 obj", body and "endobj" and returns the id.
// The object's offset is the buffer length before any of its bytes.
func (w *Writer) AddObject(body []byte) int {
	if w.finished {
		panic("pdfwriter: AddObject after Finish")
	}
	id := w.NextID()
	w.offsets = append(w.offsets, w.buf.Len())
	w.objects = append(w.objects, Object{ID: id, Body: append([]byte(nil), body...)})

	w.buf.WriteString(strconv.Itoa(id))
	w.buf.WriteString(" 0 obj\n")
	w.buf.Write(body)
	w.buf.WriteString("\nendobj\n")
	return id
}

// AddDict appends an object whose body is a dictionary literal.
func (w *Writer) AddDict(dict string) int {
	return w.AddObject([]byte(dict))
}

// AddStream appends a stream object with an exact /Length entry.
func (w *Writer) AddStream(data []byte) int {
	var body bytes.Buffer
	fmt.Fprintf(&body, "<< /Length %d >>\nstream\n", len(data))
	body.Write(data)
	body.WriteString("endstream")
	return w.AddObject(body.Bytes())
}

// SetRoot names the Catalog object referenced by the trailer.
func (w *Writer) SetRoot(id int) { w.root = id }

// Objects returns the appended objects in id order.
func (w *Writer) Objects() []Object {
	out := make([]Object, len(w.objects))
	copy(out, w.objects)
	return out
}

// Offsets returns the recorded byte offset of each object, indexed by id-1.
func (w *Writer) Offsets() []int {
	out := make([]int, len(w.offsets))
	copy(out, w.offsets)
	return out
}

// XrefOffset is the byte offset of the "xref" keyword; zero until Finish.
func (w *Writer) XrefOffset() int { return w.xrefOffset }

// Finish writes the xref table, trailer, startxref and %%EOF and returns the
// whole document. Calling it again returns the same bytes.
func (w *Writer) Finish() []byte {
	if w.finished {
		return w.buf.Bytes()
	}
	w.finished = true
	root := w.root
	if root == 0 && len(w.objects) > 0 {
		root = 1
	}
	size := len(w.objects) + 1

	w.xrefOffset = w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", size)
	w.buf.WriteString(xrefRecord(0, 65535, 'f'))
	for _, off := range w.offsets {
		w.buf.WriteString(xrefRecord(off, 0, 'n'))
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\n", size, root)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF", w.xrefOffset)
	return w.buf.Bytes()
}

// xrefRecord formats one 20-byte entry: 10-digit offset, 5-digit generation,
// the in-use flag and a two-byte " \n" end of line.
func xrefRecord(offset, generation int, flag byte) string {
	rec := fmt.Sprintf("%010d %05d %c \n", offset, generation, flag)
	if len(rec) != xrefRecordLen {
		panic(fmt.Sprintf("pdfwriter: xref record %q is %d bytes", rec, len(rec)))
	}
	return rec
}
