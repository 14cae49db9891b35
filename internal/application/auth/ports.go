package auth

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RefreshStore almacén durable de refresh tokens emitidos (jti → usuario), compartido entre instancias.
type RefreshStore interface {
	Save(ctx context.Context, session entity.RefreshSession) error
	// Lookup devuelve el usuario dueño del jti; found=false si no existe, fue revocado o expiró.
	Lookup(ctx context.Context, jti string) (userID int64, found bool, err error)
	Revoke(ctx context.Context, jti string) error
}

// LockoutMetrics contador de bloqueos de cuenta.
type LockoutMetrics interface {
	IncLockout()
}

type noopMetrics struct{}

func (noopMetrics) IncLockout() {}
