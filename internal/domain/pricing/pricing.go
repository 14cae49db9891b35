// Package pricing concentra la aritmética monetaria del IVA fijo del 21%.
//
// La misma función calcula los totales antes del checkout y el desglose del ticket,
// de modo que ambos coinciden al centavo.
package pricing

import "github.com/shopspring/decimal"

// Places decimales de los importes monetarios.
const Places = 2

var (
	// TaxRate IVA fijo.
	TaxRate = decimal.RequireFromString("0.21")
	// taxFactor 1 + TaxRate.
	taxFactor = decimal.NewFromInt(1).Add(TaxRate)
)

// Line precio unitario y cantidad de una línea.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown desglose subtotal / IVA / total, todos a 2 decimales.
type Breakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal precio × cantidad.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(Places)
}

// Totals suma las líneas y aplica el IVA.
func Totals(lines []Line) Breakdown {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return FromSubtotal(sub)
}

// FromSubtotal IVA = round(subtotal × 0.21, 2); total = subtotal + IVA.
func FromSubtotal(subtotal decimal.Decimal) Breakdown {
	sub := subtotal.Round(Places)
	tax := sub.Mul(TaxRate).Round(Places)
	return Breakdown{Subtotal: sub, Tax: tax, Total: sub.Add(tax)}
}

// FromTotal desglose inverso usado por el ticket: subtotal = round(total / 1.21, 2), IVA = total − subtotal.
// Para cualquier total producido por FromSubtotal devuelve exactamente el subtotal y el IVA originales.
func FromTotal(total decimal.Decimal) Breakdown {
	t := total.Round(Places)
	sub := t.Div(taxFactor).Round(Places)
	return Breakdown{Subtotal: sub, Tax: t.Sub(sub), Total: t}
}

// ExpectedTotal total que corresponde a las líneas; sirve para contrastar el total enviado por el cliente.
func ExpectedTotal(lines []Line) decimal.Decimal {
	return Totals(lines).Total
}
