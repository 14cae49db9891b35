package order

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/receipt"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción con el repositorio de pedidos atado a ella.
// Si fn devuelve error la transacción se revierte completa.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// ReceiptRenderer genera el documento imprimible del ticket.
type ReceiptRenderer interface {
	RenderReceipt(r receipt.Receipt) ([]byte, error)
}

// OrderMetrics contador de pedidos registrados.
type OrderMetrics interface {
	IncOrdersPlaced()
}

type noopMetrics struct{}

func (noopMetrics) IncOrdersPlaced() {}
