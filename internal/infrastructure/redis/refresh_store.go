package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

const refreshKeyPrefix = "tienda:refresh:"

var _ auth.RefreshStore = (*RefreshStore)(nil)

// RefreshStore guarda jti → id de usuario con TTL igual a la vida restante del refresh token.
type RefreshStore struct {
	client red.Cmdable
	now    func() time.Time
}

// NewRefreshStore construye el almacén sobre un cliente ya conectado.
func NewRefreshStore(client red.Cmdable) *RefreshStore {
	return &RefreshStore{client: client, now: time.Now}
}

func refreshKey(jti string) string { return refreshKeyPrefix + jti }

// Save registra la sesión. Una sesión ya expirada no se guarda.
func (s *RefreshStore) Save(ctx context.Context, session entity.RefreshSession) error {
	if session.JTI == "" {
		return errors.New("jti vacío")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, refreshKey(session.JTI), session.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set refresh: %w", err)
	}
	return nil
}

// Lookup devuelve el usuario del jti; found=false si no existe.
func (s *RefreshStore) Lookup(ctx context.Context, jti string) (int64, bool, error) {
	if jti == "" {
		return 0, false, nil
	}
	val, err := s.client.Get(ctx, refreshKey(jti)).Result()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get refresh: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("valor de refresh corrupto %q: %w", val, err)
	}
	return id, true, nil
}

// Revoke elimina el jti. Revocar uno inexistente no es error.
func (s *RefreshStore) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	if err := s.client.Del(ctx, refreshKey(jti)).Err(); err != nil {
		return fmt.Errorf("redis del refresh: %w", err)
	}
	return nil
}
