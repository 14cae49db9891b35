package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
// Las lecturas solo consideran pedidos pendientes.
type OrderRepository interface {
	// CreateHeader inserta la cabecera con fecha now() y completa ID y Date.
	CreateHeader(ctx context.Context, order *entity.Order) error
	CreateDetail(ctx context.Context, detail *entity.OrderDetail) error

	ListPending(ctx context.Context) ([]*entity.Order, error) // con nombre/email del dueño
	ListPendingByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	GetPending(ctx context.Context, id int64) (*entity.Order, error) // con nombre/email del dueño
	GetDetails(ctx context.Context, orderID int64) ([]*entity.OrderDetail, error)
}
