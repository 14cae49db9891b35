package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado.
type ProductFilter struct {
	CategoryID *int64
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	HardDeletable

	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (bool, error)
}
