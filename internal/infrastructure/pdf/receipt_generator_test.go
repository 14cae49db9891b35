package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/receipt"
)

func sampleReceipt() receipt.Receipt {
	return receipt.Receipt{
		OrderID:       12,
		CustomerName:  "Ana López",
		CustomerEmail: "ana@example.com",
		Date:          time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Lines: []receipt.Line{
			{Name: "Camiseta", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{Name: "Taza de cerámica con un nombre muy largo", Quantity: 1, UnitPrice: decimal.RequireFromString("5.50"), Subtotal: decimal.RequireFromString("5.50")},
		},
		Total: decimal.RequireFromString("30.86"),
	}
}

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	g := NewReceiptGenerator(Store{Name: "TIENDA XYZ", Address: "Calle 123", Clabe: "012345678901234567", Email: "pagos@tienda.test"})

	out, err := g.RenderReceipt(sampleReceipt())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestRenderReceipt_DatosIncompletos(t *testing.T) {
	g := NewReceiptGenerator(Store{Name: "TIENDA XYZ"})

	cases := map[string]func(r *receipt.Receipt){
		"sin nombre":    func(r *receipt.Receipt) { r.CustomerName = "" },
		"sin email":     func(r *receipt.Receipt) { r.CustomerEmail = " " },
		"sin productos": func(r *receipt.Receipt) { r.Lines = nil },
		"total cero":    func(r *receipt.Receipt) { r.Total = decimal.Zero },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := sampleReceipt()
			mutate(&r)
			out, err := g.RenderReceipt(r)
			assert.ErrorIs(t, err, domain.ErrRender)
			assert.Nil(t, out)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999.90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "$1,234,567.01", formatMoney(decimal.RequireFromString("1234567.005")))
	assert.Equal(t, "-$12.00", formatMoney(decimal.NewFromInt(-12)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
