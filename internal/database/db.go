// Package database stores tablero's records in SQLite (default) or
// PostgreSQL behind per-entity repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB is a connection pool that knows its dialect
type DB struct {
	*sql.DB
	dialect Dialect
}

// Dialect returns the SQL flavor of the pool
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind rewrites a ?-placeholder query for this pool
func (db *DB) Rebind(query string) string {
	return db.dialect.Rebind(query)
}

// Config selects the backing database
type Config struct {
	Driver string
	DSN    string
}

// DefaultSQLitePath is where the database lives when no DSN is configured
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tablero", "tablero.db"), nil
}

// InitDB opens the configured database, applies connection settings and
// runs migrations
func InitDB(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch dialect {
	case DialectPostgres:
		db, err = openPostgres(ctx, cfg.DSN)
	default:
		db, err = openSQLite(ctx, cfg.DSN)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func openSQLite(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
		dsn = path
	}
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := &DB{DB: sqlDB, dialect: DialectSQLite}

	// SQLite benefits from a single writer connection. It also keeps an
	// in-memory database alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if dsn != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			closeQuietly(db)
			return nil, err
		}
	}
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres requires a DSN")
	}
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	// Poolers in transaction mode do not support prepared statements
	connCfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	db := &DB{DB: sqlDB, dialect: DialectPostgres}
	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

func closeQuietly(db *DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
