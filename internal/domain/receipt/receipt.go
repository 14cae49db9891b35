// Package receipt define el contenido del ticket de compra, independiente de cómo se imprima.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
)

// Line renglón del ticket.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Receipt pedido confirmado tal como se imprime.
type Receipt struct {
	OrderID       int64 // 0 si aún no se conoce
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	Lines         []Line
	Total         decimal.Decimal
}

// Validate verifica los campos obligatorios. Devuelve un error que envuelve domain.ErrRender.
func (r Receipt) Validate() error {
	switch {
	case strings.TrimSpace(r.CustomerName) == "":
		return fmt.Errorf("%w: falta el nombre del cliente", domain.ErrRender)
	case strings.TrimSpace(r.CustomerEmail) == "":
		return fmt.Errorf("%w: falta el email del cliente", domain.ErrRender)
	case len(r.Lines) == 0:
		return fmt.Errorf("%w: el pedido no tiene productos", domain.ErrRender)
	case !r.Total.IsPositive():
		return fmt.Errorf("%w: total inválido", domain.ErrRender)
	}
	for i, l := range r.Lines {
		if l.Name == "" || l.Quantity <= 0 {
			return fmt.Errorf("%w: renglón %d incompleto", domain.ErrRender, i+1)
		}
	}
	return nil
}

// Breakdown subtotal e IVA derivados del total (cálculo inverso del 21%).
func (r Receipt) Breakdown() pricing.Breakdown {
	return pricing.FromTotal(r.Total)
}
