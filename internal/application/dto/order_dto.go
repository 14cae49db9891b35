package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest pedido enviado en el checkout. Los punteros distinguen campos ausentes de valores cero.
type CreateOrderRequest struct {
	Total    *decimal.Decimal   `json:"total"`
	Products []OrderLineRequest `json:"productos"`
}

// OrderLineRequest línea del carrito.
type OrderLineRequest struct {
	ProductID *int64           `json:"producto_id"`
	Quantity  *int             `json:"cantidad"`
	UnitPrice *decimal.Decimal `json:"precio_unitario"`
}

// CreateOrderResponse confirmación del pedido.
type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"pedidoId"`
}

// OrderResponse cabecera de un pedido.
type OrderResponse struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"usuario_id"`
	Date      time.Time       `json:"fecha"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"estado"`
	UserName  string          `json:"usuario_nombre,omitempty"`
	UserEmail string          `json:"usuario_email,omitempty"`
}

// OrdersResponse listado de pedidos pendientes.
type OrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"pedidos"`
}

// OrderDetailResponse línea de un pedido.
type OrderDetailResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"pedido_id"`
	Product   string          `json:"producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
