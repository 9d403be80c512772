//go:build integration

package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examflow/internal/db"
)

func TestMySQLStoreIntegration(t *testing.T) {
	ctx := context.Background()
	dsn, cleanup := setupMySQLContainer(t, ctx)
	defer cleanup()

	conn, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, db.Migrate(conn, db.DialectMySQL))
	exerciseStore(t, New(conn, zap.NewNop()))
}

// setupMySQLContainer is defined in testhelpers_integration.go
