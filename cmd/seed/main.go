// seed aplica las migraciones, crea la bodega por defecto y emite un token ADMIN de desarrollo.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if err := postgres.SeedDefaults(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("datos iniciales")
	}
	log.Info().Msg("bodega por defecto lista")

	token, err := jwt.Generate(cfg.JWT.Secret, 1, 1, entity.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}
