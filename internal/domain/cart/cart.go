// Package cart implementa el carrito del cliente: estado local, no persistido, de un único escritor.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
)

// Item línea del carrito.
type Item struct {
	ProductID int64           `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image,omitempty"`
}

// Cart agrupa los productos por id. No es seguro para uso concurrente.
type Cart struct {
	items []Item
}

// New carrito vacío.
func New() *Cart {
	return &Cart{}
}

// AddItem si el producto ya está suma 1 a su cantidad (ignora título y precio recibidos);
// si no, lo agrega con cantidad 1.
func (c *Cart) AddItem(item Item) {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// RemoveItem quita todas las entradas del producto. No-op si no existe.
func (c *Cart) RemoveItem(productID int64) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.items = nil
}

// Items copia de las líneas en orden de inserción.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len cantidad de productos distintos.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty indica si no hay productos.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Lines líneas listas para registrar el pedido.
func (c *Cart) Lines() []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, entity.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}

// Totals subtotal, IVA y total del carrito.
func (c *Cart) Totals() pricing.Breakdown {
	lines := make([]pricing.Line, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return pricing.Totals(lines)
}
