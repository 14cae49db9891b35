package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. Pertenece a exactamente una categoría; se elimina físicamente.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal // > 0
	Stock        int             // >= 0
	CategoryID   int64
	CategoryName string // solo lectura, viene del JOIN con categorias
	ImageURL     string
}
