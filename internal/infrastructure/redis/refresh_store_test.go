package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func newTestStore(t *testing.T) (*RefreshStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := red.NewClient(&red.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRefreshStore(client), server
}

func TestRefreshStore_SaveLookupRevoke(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, entity.RefreshSession{JTI: "abc", UserID: 42, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	ttl := server.TTL("tienda:refresh:abc")
	assert.True(t, ttl > 0 && ttl <= time.Hour, "ttl %v", ttl)

	id, found, err := store.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), id)

	require.NoError(t, store.Revoke(ctx, "abc"))
	_, found, err = store.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	// idempotente
	assert.NoError(t, store.Revoke(ctx, "abc"))
}

func TestRefreshStore_ExpiraConElTTL(t *testing.T) {
	store, server := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.RefreshSession{JTI: "x", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	server.FastForward(2 * time.Minute)

	_, found, err := store.Lookup(ctx, "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRefreshStore_SesionVencidaNoSeGuarda(t *testing.T) {
	store, server := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), entity.RefreshSession{JTI: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Second)}))
	assert.False(t, server.Exists("tienda:refresh:old"))
}

func TestRefreshStore_ValorCorrupto(t *testing.T) {
	store, server := newTestStore(t)
	require.NoError(t, server.Set("tienda:refresh:bad", "no-es-numero"))

	_, _, err := store.Lookup(context.Background(), "bad")
	assert.Error(t, err)
}
