// Package pdf genera el ticket de compra en formato de rollo térmico (80×130 mm).
//
// Layout:
//
//	┌──────────────────────────────┐
//	│  TIENDA / dirección          │
//	│  CLABE + email de pago       │
//	│  ──────────────────────────  │
//	│  Cliente / Correo / Fecha    │
//	│  ──────────────────────────  │
//	│  Cant | Producto | Precio |  │
//	│       Total                  │
//	│  ──────────────────────────  │
//	│  Subtotal / IVA / TOTAL      │
//	│  Gracias por su compra       │
//	└──────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-api/internal/domain/receipt"
)

// Dimensiones del rollo en mm.
const (
	PageWidth  = 80
	PageHeight = 130
)

var (
	colorGray = &props.Color{Red: 90, Green: 90, Blue: 90}
	thinLine  = props.Line{Color: colorGray, Thickness: 0.2}
)

// Store datos de la tienda impresos en la cabecera del ticket.
type Store struct {
	Name    string
	Address string
	Clabe   string
	Email   string
}

// ReceiptGenerator implementa el renderer de tickets con Maroto v2.
type ReceiptGenerator struct {
	store Store
	now   func() time.Time
}

// NewReceiptGenerator construye el generador con los datos de la tienda.
func NewReceiptGenerator(store Store) *ReceiptGenerator {
	return &ReceiptGenerator{store: store, now: time.Now}
}

// RenderReceipt valida el ticket y devuelve los bytes del PDF.
// Los errores envuelven domain.ErrRender.
func (g *ReceiptGenerator) RenderReceipt(r receipt.Receipt) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	date := r.Date
	if date.IsZero() {
		date = g.now()
	}

	cfg := config.NewBuilder().
		WithDimensions(PageWidth, PageHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Ticket de compra", true).
		WithAuthor(g.store.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(storeRows(g.store)...)
	m.AddRows(line.NewRow(2, thinLine))
	m.AddRows(customerRows(r, date)...)
	m.AddRows(line.NewRow(2, thinLine))
	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(r.Lines)...)
	m.AddRows(line.NewRow(2, thinLine))
	m.AddRows(totalsRows(r.Breakdown())...)
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 3}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generar documento: %v", domain.ErrRender, err)
	}
	return doc.GetBytes(), nil
}

func centered(s string, size float64, style fontstyle.Type) core.Row {
	return row.New(4).Add(col.New(12).Add(
		text.New(s, props.Text{Size: size, Style: style, Align: align.Center}),
	))
}

func storeRows(s Store) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(nonEmpty(s.Name, "TIENDA"), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center}),
		)),
	}
	if s.Address != "" {
		rows = append(rows, centered(s.Address, 7, fontstyle.Normal))
	}
	if s.Clabe != "" {
		rows = append(rows, centered("CLABE: "+s.Clabe, 7, fontstyle.Normal))
	}
	if s.Email != "" {
		rows = append(rows, centered("Enviar comprobante a: "+s.Email, 6, fontstyle.Normal))
	}
	return rows
}

func customerRows(r receipt.Receipt, date time.Time) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(4).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7})),
			col.New(9).Add(text.New(value, props.Text{Size: 7})),
		)
	}
	rows := []core.Row{
		field("Cliente:", r.CustomerName),
		field("Correo:", r.CustomerEmail),
		field("Fecha:", date.Format("02/01/2006 15:04")),
	}
	if r.OrderID > 0 {
		rows = append(rows, field("Pedido:", fmt.Sprintf("#%d", r.OrderID)))
	}
	return rows
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a}))
	}
	return row.New(5).Add(
		h("Cant", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Precio", 3, align.Right),
		h("Total", 3, align.Right),
	)
}

func itemRows(lines []receipt.Line) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		subtotal := l.Subtotal
		if subtotal.IsZero() {
			subtotal = pricing.LineTotal(l.UnitPrice, l.Quantity)
		}
		out = append(out, row.New(4).Add(
			col.New(2).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 7})),
			col.New(4).Add(text.New(truncate(l.Name, 22), props.Text{Size: 7})),
			col.New(3).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 7, Align: align.Right})),
			col.New(3).Add(text.New(formatMoney(subtotal), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return out
}

func totalsRows(b pricing.Breakdown) []core.Row {
	amount := func(label string, v decimal.Decimal, size float64, style fontstyle.Type) core.Row {
		return row.New(5).Add(
			col.New(7).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right})),
			col.New(5).Add(text.New(formatMoney(v), props.Text{Style: style, Size: size, Align: align.Right})),
		)
	}
	return []core.Row{
		amount("Subtotal:", b.Subtotal, 7, fontstyle.Normal),
		amount(fmt.Sprintf("IVA (%s%%):", pricing.TaxRate.Shift(2).String()), b.Tax, 7, fontstyle.Normal),
		amount("TOTAL A PAGAR:", b.Total, 9, fontstyle.Bold),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatMoney "$1,234.50": separador de miles y dos decimales.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(pricing.Places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
