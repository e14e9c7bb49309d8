// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/newslogs/internal/config"
	"github.com/tomtom215/newslogs/internal/logging"
)

// DB wraps the DuckDB connection pool holding the news log tables.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the DuckDB database described by cfg. The base tables are
// expected to exist already; New does not create or migrate anything.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	conn, err := sql.Open("duckdb", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}

	db.configureConnectionPool()

	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Path, classifyQueryError(err))
	}

	logging.Debug().
		Str("path", cfg.Path).
		Bool("read_only", cfg.ReadOnly).
		Msg("Database opened")

	return db, nil
}

// connString builds the DuckDB DSN with tuning options.
func connString(cfg *config.DatabaseConfig) string {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	accessMode := "read_write"
	if cfg.ReadOnly {
		accessMode = "read_only"
	}

	dsn := fmt.Sprintf("%s?access_mode=%s&threads=%d", cfg.Path, accessMode, numThreads)
	if cfg.MaxMemory != "" {
		dsn += "&max_memory=" + cfg.MaxMemory
	}
	return dsn
}

// Close closes the database connection pool
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Path returns the configured database path.
func (db *DB) Path() string {
	return db.cfg.Path
}

// withConn runs fn on a single pooled connection. The connection is returned
// to the pool on every exit path.
func (db *DB) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", classifyQueryError(err))
	}
	defer closeWithLog(conn, "connection")

	return fn(conn)
}
