// Package pdfexport renders contractdoc documents to PDF and delivers them.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"celebrai-backend/internal/contractdoc"
)

const fontFamily = "Helvetica"

// Export renders doc with the core Helvetica font. Identical documents
// produce identical bytes.
func Export(doc *contractdoc.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("Celebrai", true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for pi, page := range doc.Pages {
		pdf.AddPage()
		for oi, op := range page.Ops {
			switch o := op.(type) {
			case contractdoc.TextOp:
				drawText(pdf, tr, o)
			case contractdoc.LineOp:
				pdf.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
				pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			case contractdoc.RectOp:
				pdf.SetFillColor(int(o.Fill.R), int(o.Fill.G), int(o.Fill.B))
				pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case contractdoc.ImageOp:
				name := fmt.Sprintf("img-%d-%d", pi, oi)
				opts := fpdf.ImageOptions{ImageType: "PNG"}
				pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(o.PNG))
				pdf.ImageOptions(name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(pdf *fpdf.Fpdf, tr func(string) string, o contractdoc.TextOp) {
	style := ""
	if o.Bold {
		style = "B"
	}
	pdf.SetFont(fontFamily, style, o.Size)
	pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))

	text := tr(o.Text)
	x := o.X
	switch o.Align {
	case contractdoc.AlignCenter:
		x -= pdf.GetStringWidth(text) / 2
	case contractdoc.AlignRight:
		x -= pdf.GetStringWidth(text)
	}
	pdf.Text(x, o.Y, text)
}
