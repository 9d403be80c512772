package sqlstore

import (
	"database/sql"

	"go.uber.org/zap"

	"examflow/internal/db"
)

// Store keeps cache namespaces in a SQL database. The same queries run on
// MySQL and SQLite.
type Store struct {
	conn    *sql.DB
	queries *db.Queries
	log     *zap.Logger
}

func New(conn *sql.DB, logger *zap.Logger) *Store {
	return &Store{conn: conn, queries: db.New(conn), log: logger}
}
