// migrate aplica las migraciones embebidas en internal/infrastructure/postgres/migrations.
//
// Uso: go run ./cmd/migrate
// Toma la conexión de DATABASE_URL o DB_* (ver pkg/config).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("aplicada")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones interrumpidas")
	}
	if len(applied) == 0 {
		log.Info().Msg("esquema al día, nada que aplicar")
	}
}
