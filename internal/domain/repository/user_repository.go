package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas solo devuelven usuarios activos; (nil, nil) si no existe.
type UserRepository interface {
	SoftDeletable

	// Create inserta el usuario y completa ID y RegisteredAt.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListActive(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id int64, role entity.Role) (bool, error)

	// RegisterFailedAttempt incrementa el contador de forma atómica y fija lockUntil si
	// el nuevo valor alcanza threshold. Devuelve el contador resultante.
	RegisterFailedAttempt(ctx context.Context, id int64, threshold int, lockUntil time.Time) (int, error)
	// ResetFailedAttempts pone el contador en 0 y limpia el bloqueo.
	ResetFailedAttempts(ctx context.Context, id int64) error
}
