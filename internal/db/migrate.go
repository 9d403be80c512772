package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite3"
)

// Migrate applies all pending migrations for the given goose dialect.
func Migrate(conn *sql.DB, dialect string) error {
	dir := "migrations/mysql"
	if dialect == DialectSQLite {
		dir = "migrations/sqlite"
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(conn, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
