package db

import (
	"bizdash/internal/config"
	"bizdash/internal/db/migrations"
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations накатывает встроенные goose-миграции через stdlib-драйвер pgx.
func RunMigrations(ctx context.Context, cfg *config.Config) error {
	conn, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
