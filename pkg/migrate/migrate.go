// Package migrate aplica las migraciones SQL embebidas con goose.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dir directorio de migraciones dentro de Migrations.
const Dir = "migrations"

// Migrations SQL embebido en el binario.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed seed.sql
var seedSQL string

// Run ejecuta un comando goose (up, down, status, version, redo, reset) sobre las migraciones embebidas.
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, Dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up aplica todas las migraciones pendientes.
func Up(ctx context.Context, db *sql.DB) error {
	return Run(ctx, db, "up")
}

// Seed carga datos de ejemplo (zonas, racks, productos, líneas de encomienda). Idempotente.
func Seed(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
