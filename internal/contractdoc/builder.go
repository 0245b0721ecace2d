package contractdoc

import (
	"fmt"
	"time"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/logger"
)

const (
	margin       = 20.0
	topMargin    = 20.0
	contentWidth = PageWidth - 2*margin

	// Cursor limits past which a section starts on a fresh page.
	tableRowLimit     = 260.0
	notesSectionLimit = 230.0
	noteLineLimit     = 270.0
	termsSectionLimit = 200.0
	signatureLimit    = 230.0

	footerOffset = 10.0
)

var terms = []string{
	"1. O presente contrato estabelece os termos para a prestação dos serviços descritos acima.",
	"2. O cliente declara estar ciente e de acordo com todas as condições estabelecidas.",
	"3. Este documento possui validade jurídica quando assinado digitalmente por ambas as partes.",
	"4. Qualquer alteração neste contrato deverá ser feita por escrito e aprovada pelas partes.",
}

type options struct {
	now      func() time.Time
	loc      *time.Location
	measurer Measurer
	log      *logger.Logger
}

type Option func(*options)

// WithClock sets the source of the generation date printed in the footer.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

func WithMeasurer(m Measurer) Option {
	return func(o *options) { o.measurer = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// layout owns the cursor for a single Build call.
type layout struct {
	opts options
	doc  *Document
	y    float64
}

type textStyle struct {
	size  float64
	bold  bool
	align Align
	color Color
}

// Build lays out the contract. It never fails: absent optional fields fall
// back to defaults and an unreadable signature image is skipped.
func Build(data *domain.ContractData, opts ...Option) *Document {
	o := options{now: time.Now, loc: DefaultLocation()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.measurer == nil {
		o.measurer = NewHelveticaMeasurer()
	}
	if o.log == nil {
		o.log = logger.Log
	}

	generatedAt := o.now()
	l := &layout{
		opts: o,
		doc: &Document{
			Title:       "Contrato - " + data.ClientName,
			GeneratedAt: generatedAt,
			Pages:       []Page{{}},
		},
		y: topMargin,
	}

	l.header(data)
	l.clientInfo(data)
	l.serviceInfo(data)
	if len(data.QuoteItems) > 0 {
		l.itemsTable(data)
	}
	if data.Notes != "" {
		l.notes(data.Notes)
	}
	l.terms()
	l.signature(data)
	l.footers(data.TenantName, generatedAt)

	return l.doc
}

func (l *layout) emit(op Op) {
	page := &l.doc.Pages[len(l.doc.Pages)-1]
	page.Ops = append(page.Ops, op)
}

func (l *layout) newPage() {
	l.doc.Pages = append(l.doc.Pages, Page{})
	l.y = topMargin
}

func (l *layout) breakIfPast(limit float64) {
	if l.y > limit {
		l.newPage()
	}
}

// addText draws at the cursor and advances it by size/2.5. Centred and
// right aligned text is anchored to the page, not to x.
func (l *layout) addText(text string, x float64, st textStyle) {
	switch st.align {
	case AlignCenter:
		x = PageWidth / 2
	case AlignRight:
		x = PageWidth - margin
	}
	l.emit(TextOp{X: x, Y: l.y, Text: text, Size: st.size, Bold: st.bold, Align: st.align, Color: st.color})
	l.y += st.size / 2.5
}

// textAt draws without moving the cursor.
func (l *layout) textAt(text string, x, y float64, st textStyle) {
	l.emit(TextOp{X: x, Y: y, Text: text, Size: st.size, Bold: st.bold, Align: st.align, Color: st.color})
}

func (l *layout) rule(y float64) {
	l.emit(LineOp{X1: margin, Y1: y, X2: PageWidth - margin, Y2: y, Color: ruleGrey})
}

func heading(size float64) textStyle {
	return textStyle{size: size, bold: true, color: black}
}

func plain(size float64) textStyle {
	return textStyle{size: size, color: black}
}

func (l *layout) header(data *domain.ContractData) {
	l.addText(data.TenantName, margin, heading(22))
	l.y += 5

	l.rule(l.y)
	l.y += 10

	st := heading(16)
	st.align = AlignCenter
	l.addText("CONTRATO DE SERVIÇOS", margin, st)
	l.y += 15
}

func (l *layout) clientInfo(data *domain.ContractData) {
	l.emit(RectOp{X: margin, Y: l.y - 5, W: contentWidth, H: 35, Fill: boxFill})

	l.addText("DADOS DO CLIENTE", margin+5, heading(12))
	l.y += 3
	l.addText("Nome: "+data.ClientName, margin+5, plain(11))
	if data.ClientPhone != "" {
		l.addText("Telefone: "+data.ClientPhone, margin+5, plain(11))
	}
	if data.ClientEmail != "" {
		l.addText("Email: "+data.ClientEmail, margin+5, plain(11))
	}
	l.y += 10
}

func (l *layout) serviceInfo(data *domain.ContractData) {
	l.addText("Tipo de Serviço: "+data.ContractType.Label(), margin, plain(11))
	l.addText("Data de Emissão: "+formatDate(data.CreatedAt, l.opts.loc), margin, plain(11))
	l.y += 10
}

func (l *layout) itemsTable(data *domain.ContractData) {
	qtyX := PageWidth - 80
	unitX := PageWidth - 55
	totalX := PageWidth - margin - 5

	l.rule(l.y)
	l.y += 8
	l.addText("ITENS DO ORÇAMENTO", margin, heading(12))
	l.y += 8

	l.emit(RectOp{X: margin, Y: l.y - 5, W: contentWidth, H: 10, Fill: headFill})
	head := heading(10)
	l.textAt("Descrição", margin+5, l.y, head)
	head.align = AlignCenter
	l.textAt("Qtd", qtyX, l.y, head)
	l.textAt("Unit.", unitX, l.y, head)
	head.align = AlignRight
	l.textAt("Total", totalX, l.y, head)
	l.y += 8

	row := plain(10)
	for _, item := range data.QuoteItems {
		l.breakIfPast(tableRowLimit)

		l.textAt(truncateDescription(item.Description), margin+5, l.y, row)
		centered := row
		centered.align = AlignCenter
		l.textAt(fmt.Sprintf("%d", item.QuantityOrDefault()), qtyX, l.y, centered)
		l.textAt(formatCurrency(item.UnitPriceOrZero()), unitX, l.y, centered)
		right := row
		right.align = AlignRight
		l.textAt(formatCurrency(item.TotalPriceOrZero()), totalX, l.y, right)
		l.y += 7
	}

	l.y += 5
	l.rule(l.y - 3)

	l.y += 5
	total := heading(12)
	total.align = AlignRight
	l.addText("VALOR TOTAL: "+formatCurrency(data.TotalOrZero()), totalX, total)
	l.y += 10
}

func (l *layout) notes(notes string) {
	l.breakIfPast(notesSectionLimit)

	l.rule(l.y)
	l.y += 8
	l.addText("OBSERVAÇÕES", margin, heading(12))
	l.y += 5

	for _, line := range wrapText(l.opts.measurer, notes, contentWidth, 10) {
		l.breakIfPast(noteLineLimit)
		l.textAt(line, margin, l.y, plain(10))
		l.y += 5
	}
	l.y += 10
}

func (l *layout) terms() {
	l.breakIfPast(termsSectionLimit)

	l.rule(l.y)
	l.y += 8
	l.addText("TERMOS E CONDIÇÕES", margin, heading(12))
	l.y += 5

	for _, term := range terms {
		for _, line := range wrapText(l.opts.measurer, term, contentWidth, 9) {
			l.textAt(line, margin, l.y, plain(9))
			l.y += 4.5
		}
		l.y += 2
	}
}

// footers stamps every page once the body is complete.
func (l *layout) footers(tenantName string, generatedAt time.Time) {
	text := fmt.Sprintf("%s - Contrato gerado em %s", tenantName, formatDate(generatedAt, l.opts.loc))
	st := textStyle{size: 8, align: AlignCenter, color: footGrey}
	for i := range l.doc.Pages {
		op := TextOp{X: PageWidth / 2, Y: PageHeight - footerOffset, Text: text, Size: st.size, Align: st.align, Color: st.color}
		l.doc.Pages[i].Ops = append(l.doc.Pages[i].Ops, op)
	}
}
