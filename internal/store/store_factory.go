package store

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"examflow/internal/config"
	"examflow/internal/db"
	"examflow/internal/repository"
	"examflow/internal/store/memory"
	"examflow/internal/store/sqlstore"
)

// NewStore picks the cache backend: MySQL when MYSQL_DSN is set, an embedded
// SQLite file when SQLITE_PATH is set, memory otherwise.
func NewStore(cfg *config.Config, logger *zap.Logger) (repository.CacheRepository, error) {
	switch {
	case cfg.MySQLDSN != "":
		return openSQL(logger, "mysql", cfg.MySQLDSN, db.DialectMySQL)
	case cfg.SQLitePath != "":
		return openSQL(logger, "sqlite", "file:"+cfg.SQLitePath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", db.DialectSQLite)
	default:
		logger.Warn("no cache database configured, entries will not survive restarts")
		return memory.New(logger), nil
	}
}

func openSQL(logger *zap.Logger, driver, dsn, dialect string) (repository.CacheRepository, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		logger.Error("cache db open failed", zap.String("driver", driver), zap.Error(err))
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Error("cache db ping failed", zap.String("driver", driver), zap.Error(err))
		_ = sqlDB.Close()
		return nil, err
	}
	if dialect == db.DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.Migrate(sqlDB, dialect); err != nil {
		logger.Error("cache db migrate failed", zap.String("driver", driver), zap.Error(err))
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("cache db ready", zap.String("driver", driver))
	return sqlstore.New(sqlDB, logger), nil
}
