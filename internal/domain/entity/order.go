package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending único estado que produce este sistema.
const OrderStatusPending = "pendiente"

// Order cabecera de un pedido. Inmutable una vez creado.
type Order struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Total     decimal.Decimal
	Status    string
	UserName  string // solo en listados de admin (JOIN usuarios)
	UserEmail string
}

// OrderDetail línea de un pedido. Subtotal = Quantity × UnitPrice (columna generada en la DB).
type OrderDetail struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string // JOIN productos, solo lectura
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderLine línea de carrito enviada al registrar un pedido (aún sin persistir).
type OrderLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}
