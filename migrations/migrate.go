package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"github.com/pressly/goose/v3"
	"log/slog"
)

//go:embed changelog/*.sql
var changelog embed.FS

// Dialect maps a database driver name to the goose dialect.
func Dialect(driver string) string {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return "postgres"
	}
}

func Migrate(db *sql.DB, driver string, log *slog.Logger) error {
	goose.SetBaseFS(changelog)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(Dialect(driver)); err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	if err := goose.Up(db, "changelog"); err != nil {
		return fmt.Errorf("goose: failed to apply migration: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	log.Info("Successfully applied migration", "version", version)
	return nil
}
