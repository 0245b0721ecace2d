// Package contractdoc lays out a service contract as pages of draw
// operations. It does no I/O; pkg/pdfexport turns a Document into bytes.
package contractdoc

import "time"

// A4 portrait, in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Color struct {
	R, G, B uint8
}

var (
	black     = Color{0, 0, 0}
	ruleGrey  = Color{200, 200, 200}
	mutedGrey = Color{100, 100, 100}
	footGrey  = Color{128, 128, 128}
	boxFill   = Color{245, 245, 245}
	headFill  = Color{230, 230, 230}
)

// Op is a single draw operation on a page.
type Op interface {
	isOp()
}

// TextOp draws Text on the baseline Y. X is the anchor: the left edge, the
// centre or the right edge depending on Align.
type TextOp struct {
	X, Y  float64
	Text  string
	Size  float64
	Bold  bool
	Align Align
	Color Color
}

type LineOp struct {
	X1, Y1, X2, Y2 float64
	Color          Color
}

// RectOp is a filled rectangle.
type RectOp struct {
	X, Y, W, H float64
	Fill       Color
}

// ImageOp places a PNG scaled to W x H.
type ImageOp struct {
	X, Y, W, H float64
	PNG        []byte
}

func (TextOp) isOp()  {}
func (LineOp) isOp()  {}
func (RectOp) isOp()  {}
func (ImageOp) isOp() {}

type Page struct {
	Ops []Op
}

// Texts returns the text of every TextOp on the page, in draw order.
func (p Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

type Document struct {
	Title       string
	GeneratedAt time.Time
	Pages       []Page
}

// Texts returns the text of every page in order.
func (d *Document) Texts() []string {
	var out []string
	for _, p := range d.Pages {
		out = append(out, p.Texts()...)
	}
	return out
}

// Ops returns every op of type T across all pages.
func OpsOf[T Op](d *Document) []T {
	var out []T
	for _, p := range d.Pages {
		for _, op := range p.Ops {
			if v, ok := op.(T); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
