package printer

import (
	"bytes"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment arguments for ESC a. Sent as ASCII digits, which every printer
// model in use accepts.
const (
	AlignLeft   byte = '0'
	AlignCenter byte = '1'
	AlignRight  byte = '2'
)

// Print mode bits for ESC !
const (
	ModeNormal byte = 0x00
	ModeSmall  byte = 0x01 // font B
	ModeBold   byte = 0x08 // emphasized
	ModeDouble byte = 0x30 // double height + double width
)

// Code page used by the test page (ESC t 2).
const CodePagePC850 byte = 0x02

// Document builds an ESC/POS byte stream for a thermal roll of a fixed
// character width.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document and writes the ESC @ reset.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 30
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the characters per line.
func (d *Document) Width() int {
	return d.width
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// CodeTable selects a character code table with ESC t.
func (d *Document) CodeTable(n byte) *Document {
	d.buf.Write([]byte{ESC, 't', n})
	return d
}

// Align sets text alignment with ESC a.
func (d *Document) Align(align byte) *Document {
	d.buf.Write([]byte{ESC, 'a', align})
	return d
}

// Mode sets the print mode with ESC !.
func (d *Document) Mode(mode byte) *Document {
	d.buf.Write([]byte{ESC, '!', mode})
	return d
}

// Line writes cleaned text followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(CleanText(s))
	d.buf.WriteByte(LF)
	return d
}

// Labeled writes a fixed ASCII label followed by cleaned text.
func (d *Document) Labeled(label, value string) *Document {
	d.buf.WriteString(label)
	d.buf.WriteString(CleanText(value))
	d.buf.WriteByte(LF)
	return d
}

// Raw writes s untouched. Callers use it for text that is already printable ASCII.
func (d *Document) Raw(s string) *Document {
	d.buf.WriteString(s)
	return d
}

// Divider prints a full-width rule.
func (d *Document) Divider() *Document {
	return d.Rule(d.width)
}

// Rule prints n dashes.
func (d *Document) Rule(n int) *Document {
	d.buf.WriteString(strings.Repeat("-", n))
	d.buf.WriteByte(LF)
	return d
}

// Columns prints left and right on one line with right flush to the edge.
func (d *Document) Columns(left, right string) *Document {
	d.buf.WriteString(FormatLine(left, right, d.width))
	return d
}

// Wrapped splits s into width-sized chunks and prints each one cleaned.
func (d *Document) Wrapped(s string) *Document {
	for _, chunk := range Wrap(s, d.width) {
		d.Line(chunk)
	}
	return d
}

// Feed sends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// PartialCut sends GS V 1.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// FeedAndCut sends GS V A n: feed n dots then cut.
func (d *Document) FeedAndCut(n byte) *Document {
	d.buf.Write([]byte{GS, 'V', 'A', n})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
