// Package redis adaptadores sobre Redis: cliente y almacén de refresh tokens.
package redis

import (
	"context"
	"fmt"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-api/pkg/config"
)

// NewClient abre el pool de conexiones y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*red.Client, error) {
	client := red.NewClient(&red.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
