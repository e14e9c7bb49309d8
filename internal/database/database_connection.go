// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"strings"
	"time"
)

// configureConnectionPool sets connection pool parameters. Reports run one
// after another, so a small pool is enough.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(2)
	db.conn.SetMaxIdleConns(1)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// isConnectionError checks if an error indicates database connection loss
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "bad connection") ||
		strings.Contains(errMsg, "database is closed")
}

// isMissingAggregate checks if an error is DuckDB reporting that one of the
// aggregate views was never created.
func isMissingAggregate(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	if !strings.Contains(errMsg, "Catalog Error") || !strings.Contains(errMsg, "does not exist") {
		return false
	}
	return strings.Contains(errMsg, ViewArticleViewCount) ||
		strings.Contains(errMsg, ViewAccessByDate)
}
