package bootstrap

import (
	"log/slog"

	"saulstari/internal/pkg/config"
	"saulstari/migrations"

	_ "github.com/lib/pq" // database/sql driver for goose
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations before the pool is
// handed to anything else.
func RunMigrations(cfg config.Config) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", cfg.DB.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(sqlDB, "."); err != nil {
		return err
	}

	slog.Info("migrations applied")
	return nil
}
