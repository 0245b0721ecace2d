package contractdoc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/jpeg"

	"golang.org/x/image/draw"

	"celebrai-backend/internal/domain"
)

const (
	signatureWidth  = 60.0
	signatureHeight = 25.0
	signLineWidth   = 70.0

	// Signature pads export large canvases; 600x250 px keeps ~250 dpi at 60x25 mm.
	maxSignaturePxW = 600
	maxSignaturePxH = 250
)

func (l *layout) signature(data *domain.ContractData) {
	l.y += 15
	l.breakIfPast(signatureLimit)

	if data.IsSigned() {
		l.signedBlock(data)
		return
	}
	l.blankBlock()
}

func (l *layout) signedBlock(data *domain.ContractData) {
	l.rule(l.y)
	l.y += 10
	l.addText("ASSINATURA DIGITAL", margin, heading(12))
	l.y += 10

	img, err := decodeSignature(data.SignatureImage)
	if err != nil {
		l.opts.log.Error("Error adding signature image", "client", data.ClientName, "error", err)
	} else {
		l.emit(ImageOp{X: margin, Y: l.y, W: signatureWidth, H: signatureHeight, PNG: img})
	}

	l.y += 30
	l.emit(LineOp{X1: margin, Y1: l.y, X2: margin + signLineWidth, Y2: l.y, Color: ruleGrey})
	l.y += 5
	l.textAt(data.ClientName, margin, l.y, plain(10))

	if data.SignedAt != nil {
		l.y += 5
		st := plain(9)
		st.color = mutedGrey
		l.textAt("Assinado digitalmente em: "+formatDateTime(*data.SignedAt, l.opts.loc), margin, l.y, st)
	}
}

func (l *layout) blankBlock() {
	l.y += 20

	l.emit(LineOp{X1: margin, Y1: l.y, X2: margin + signLineWidth, Y2: l.y, Color: ruleGrey})
	l.textAt("Contratante", margin, l.y+5, plain(10))

	right := PageWidth - margin - signLineWidth
	l.emit(LineOp{X1: right, Y1: l.y, X2: PageWidth - margin, Y2: l.y, Color: ruleGrey})
	l.textAt("Contratado", right, l.y+5, plain(10))
}

// decodeSignature accepts a data URL or bare base64 PNG/JPEG and returns a
// PNG no larger than the signature box resolution.
func decodeSignature(raw string) ([]byte, error) {
	payload := strings.TrimSpace(raw)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.IndexByte(payload, ',')
		if idx < 0 {
			return nil, errors.New("malformed data URL")
		}
		payload = payload[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	src, format, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty %s image", format)
	}
	if w > maxSignaturePxW || h > maxSignaturePxH {
		scale := min(float64(maxSignaturePxW)/float64(w), float64(maxSignaturePxH)/float64(h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
