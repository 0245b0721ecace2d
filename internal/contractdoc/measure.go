package contractdoc

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Measurer reports the rendered width of a string in millimetres.
type Measurer interface {
	TextWidth(text string, size float64, bold bool) float64
}

// helveticaMeasurer uses the core Helvetica metrics shipped with fpdf, the
// same font pkg/pdfexport draws with. It is not safe for concurrent use.
type helveticaMeasurer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func NewHelveticaMeasurer() Measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &helveticaMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *helveticaMeasurer) TextWidth(text string, size float64, bold bool) float64 {
	style := ""
	if bold {
		style = "B"
	}
	m.pdf.SetFont("Helvetica", style, size)
	return m.pdf.GetStringWidth(m.translate(text))
}

// wrapText breaks text into lines no wider than width. Existing newlines are
// kept; a word wider than the line is split by runes.
func wrapText(m Measurer, text string, width, size float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.TextWidth(candidate, size, false) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for m.TextWidth(word, size, false) > width {
				head, tail := splitToWidth(m, word, width, size)
				lines = append(lines, head)
				word = tail
			}
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

func splitToWidth(m Measurer, word string, width, size float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.TextWidth(string(runes[:n+1]), size, false) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
