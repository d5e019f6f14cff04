package export

import (
	"strings"
	"unicode/utf8"
)

// A4 portrait page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	BottomMargin = 20.0
	TopMargin    = 20.0
	SideMargin   = 20.0
	MaxY         = PageHeight - BottomMargin

	ptToMM         = 0.3528
	lineHeightRate = 1.15
	avgGlyphWidth  = 0.5 // of the font size, Helvetica average
)

// Kind is the type of a drawing instruction.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindText      Kind = "text"
	KindLabeled   Kind = "labeled"
	KindParagraph Kind = "paragraph"
	KindBullet    Kind = "bullet"
	KindPageBreak Kind = "page_break"
	KindFooter    Kind = "footer"
)

// Color is an RGB text colour.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black     = Color{}
	BrandBlue = Color{R: 0, G: 113, B: 206}
	Grey      = Color{R: 128, G: 128, B: 128}
)

// Instruction is one positioned element of a document. Y is the text baseline.
type Instruction struct {
	Kind     Kind     `json:"kind"`
	Page     int      `json:"page"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	FontSize float64  `json:"font_size,omitempty"`
	Color    Color    `json:"color"`
	Label    string   `json:"label,omitempty"`
	Text     string   `json:"text,omitempty"`
	Lines    []string `json:"lines,omitempty"`
}

// Content is the visible text of the instruction.
func (in Instruction) Content() string {
	switch {
	case in.Kind == KindLabeled:
		return in.Label + ": " + in.Text
	case len(in.Lines) > 0:
		return strings.Join(in.Lines, " ")
	default:
		return in.Text
	}
}

// Document is an ordered instruction list.
type Document struct {
	Title        string        `json:"title"`
	Filename     string        `json:"filename"`
	Pages        int           `json:"pages"`
	Instructions []Instruction `json:"instructions"`
}

// Texts returns the content of every instruction in order, skipping page breaks.
func (d Document) Texts() []string {
	out := make([]string, 0, len(d.Instructions))
	for _, in := range d.Instructions {
		if in.Kind == KindPageBreak {
			continue
		}
		out = append(out, in.Content())
	}
	return out
}

// LineHeight is the baseline-to-baseline distance for a font size in points.
func LineHeight(fontSize float64) float64 {
	return fontSize * ptToMM * lineHeightRate
}

// WrapText splits text into lines that fit width millimetres at the given
// font size. Width is estimated from an average glyph width.
func WrapText(text string, width, fontSize float64) []string {
	maxChars := int(width / (fontSize * ptToMM * avgGlyphWidth))
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) <= maxChars:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// layout places instructions on pages. Callers position content the way it
// would sit on one tall page; once an instruction would end below MaxY a page
// break is emitted and the rest of the content is shifted up to TopMargin.
type layout struct {
	doc    Document
	page   int
	offset float64
}

func newLayout(title, filename string) *layout {
	return &layout{doc: Document{Title: title, Filename: filename}, page: 1}
}

// add places in at its logical y. extent is how far the instruction reaches
// below its baseline.
func (l *layout) add(in Instruction, extent float64) {
	y := in.Y + l.offset
	if y+extent > MaxY {
		l.doc.Instructions = append(l.doc.Instructions, Instruction{Kind: KindPageBreak, Page: l.page, Y: y})
		l.page++
		l.offset = TopMargin - in.Y
		y = TopMargin
	}
	in.Y = y
	in.Page = l.page
	l.doc.Instructions = append(l.doc.Instructions, in)
}

func (l *layout) heading(text string, x, y, size float64, color Color) {
	l.add(Instruction{Kind: KindHeading, X: x, Y: y, FontSize: size, Color: color, Text: text}, 0)
}

func (l *layout) text(text string, x, y, size float64) {
	l.add(Instruction{Kind: KindText, X: x, Y: y, FontSize: size, Color: Black, Text: text}, 0)
}

func (l *layout) labeled(label, value string, x, y, size float64) {
	l.add(Instruction{Kind: KindLabeled, X: x, Y: y, FontSize: size, Color: Black, Label: label, Text: value}, 0)
}

func (l *layout) bullet(text string, x, y, size float64) {
	l.add(Instruction{Kind: KindBullet, X: x, Y: y, FontSize: size, Color: Black, Text: text}, 0)
}

// paragraph wraps text to the printable width and returns the number of lines.
func (l *layout) paragraph(text string, x, y, size float64) int {
	lines := WrapText(text, PageWidth-2*SideMargin, size)
	if len(lines) == 0 {
		return 0
	}
	extent := float64(len(lines)-1) * LineHeight(size)
	l.add(Instruction{Kind: KindParagraph, X: x, Y: y, FontSize: size, Color: Black, Lines: lines}, extent)
	return len(lines)
}

// footer sits in the bottom margin of the current page and never breaks.
func (l *layout) footer(text string, size float64) {
	l.doc.Instructions = append(l.doc.Instructions, Instruction{
		Kind: KindFooter, Page: l.page, X: SideMargin, Y: PageHeight - 10, FontSize: size, Color: Grey, Text: text,
	})
}

func (l *layout) finish() Document {
	l.doc.Pages = l.page
	return l.doc
}
