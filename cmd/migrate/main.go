package main

import (
	"context"
	"flag"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/armazem-api/internal/infrastructure/postgres"
	"github.com/jhoicas/armazem-api/pkg/config"
	"github.com/jhoicas/armazem-api/pkg/logger"
	"github.com/jhoicas/armazem-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|version|redo|reset|seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	switch *cmd {
	case "seed":
		err = migrate.Seed(ctx, db)
	default:
		err = migrate.Run(ctx, db, *cmd, flag.Args()...)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
