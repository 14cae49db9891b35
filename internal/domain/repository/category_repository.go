package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	SoftDeletable

	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error) // solo activas
	ListActive(ctx context.Context) ([]*entity.Category, error)
	// Update renombra una categoría activa. false si no existe o está inactiva.
	Update(ctx context.Context, category *entity.Category) (bool, error)
}
