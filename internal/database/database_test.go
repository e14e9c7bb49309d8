// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/newslogs/internal/config"
)

// testDBSemaphore limits concurrent DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 2)

// setupTestDB opens an in-memory database with empty base tables.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "512MB",
		Threads:      1,
		QueryTimeout: 10 * time.Second,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		closeQuietly(db)
	})

	createBaseTables(t, db)
	return db
}

// setupTestDBWithData opens a database with the standard fixture loaded and
// the aggregate views built.
func setupTestDBWithData(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	insertFixture(t, db)
	checkNoError(t, db.RebuildAggregates(context.Background()))
	return db
}

func createBaseTables(t *testing.T, db *DB) {
	t.Helper()
	stmts := []string{
		`CREATE TABLE authors (id INTEGER PRIMARY KEY, name VARCHAR NOT NULL, bio VARCHAR)`,
		`CREATE TABLE articles (author INTEGER NOT NULL, title VARCHAR NOT NULL, slug VARCHAR NOT NULL, lead VARCHAR, body VARCHAR, "time" TIMESTAMP)`,
		`CREATE TABLE "log" (path VARCHAR, ip VARCHAR, method VARCHAR, status VARCHAR, "time" TIMESTAMP, id INTEGER)`,
	}
	for _, stmt := range stmts {
		execSQL(t, db, stmt)
	}
}

func execSQL(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.conn.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", firstLine(query), err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func insertAuthor(t *testing.T, db *DB, id int, name string) {
	t.Helper()
	execSQL(t, db, `INSERT INTO authors (id, name) VALUES (?, ?)`, id, name)
}

func insertArticle(t *testing.T, db *DB, author int, title, slug string) {
	t.Helper()
	execSQL(t, db, `INSERT INTO articles (author, title, slug) VALUES (?, ?, ?)`, author, title, slug)
}

// insertLogs inserts count identical requests.
func insertLogs(t *testing.T, db *DB, path, status, at string, count int) {
	t.Helper()
	execSQL(t, db, fmt.Sprintf(
		`INSERT INTO "log" (path, ip, method, status, "time")
		SELECT ?, '198.51.100.7', 'GET', ?, CAST(? AS TIMESTAMP) FROM range(%d)`, count),
		path, status, at)
}

// Fixture articles and their expected successful views.
const (
	titleCandidate = "Candidate is jerk, alleges rival"
	titleBadThings = "Bad things gone, say good people"
	titleBears     = "Bears love berries, alleges bear"
	titleTrouble   = "Trouble for troubled troublemakers"

	authorUrsula  = "Ursula La Multa"
	authorRudolf  = "Rudolf von Treppenwitz"
	authorUnknown = "Anonymous Contributor"
)

// insertFixture loads three days of traffic:
//
//	2016-07-01  12 requests, 1 error  (8.33%)
//	2016-07-02  201 requests, 1 error (0.50%)
//	2016-07-03  100 requests, 1 error (1.00%)
//
// Article views: candidate 5, bad-things 3, bears 3, trouble 0.
func insertFixture(t *testing.T, db *DB) {
	t.Helper()

	insertAuthor(t, db, 1, authorUrsula)
	insertAuthor(t, db, 2, authorRudolf)
	insertAuthor(t, db, 3, authorUnknown)

	insertArticle(t, db, 1, titleCandidate, "candidate-is-jerk")
	insertArticle(t, db, 1, titleBadThings, "bad-things-gone")
	insertArticle(t, db, 2, titleBears, "bears-love-berries")
	insertArticle(t, db, 3, titleTrouble, "trouble-for-troublemakers")

	day1 := "2016-07-01 10:00:00"
	insertLogs(t, db, "/article/candidate-is-jerk", "200 OK", day1, 5)
	insertLogs(t, db, "/article/bad-things-gone", "200 OK", day1, 3)
	insertLogs(t, db, "/article/bears-love-berries", "200 OK", day1, 3)
	insertLogs(t, db, "/article/trouble-for-troublemakers", "404 NOT FOUND", day1, 1)

	day2 := "2016-07-02 23:59:59"
	insertLogs(t, db, "/", "200 OK", day2, 200)
	insertLogs(t, db, "/article/missing", "404 NOT FOUND", day2, 1)

	day3 := "2016-07-03 00:00:00"
	insertLogs(t, db, "/", "200 OK", day3, 99)
	insertLogs(t, db, "/article/missing", "404 NOT FOUND", day3, 1)
}

func TestNew_MemoryDatabase(t *testing.T) {
	db := setupTestDB(t)

	checkNoError(t, db.Ping(context.Background()))
	checkStringEqual(t, "path", db.Path(), ":memory:")
}

func TestConnString(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "read write with memory limit",
			cfg:  config.DatabaseConfig{Path: "news.duckdb", Threads: 4, MaxMemory: "1GB"},
			want: "news.duckdb?access_mode=read_write&threads=4&max_memory=1GB",
		},
		{
			name: "read only without memory limit",
			cfg:  config.DatabaseConfig{Path: "/data/news.duckdb", Threads: 2, ReadOnly: true},
			want: "/data/news.duckdb?access_mode=read_only&threads=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkStringEqual(t, "dsn", connString(&tt.cfg), tt.want)
		})
	}
}

func TestConnString_DefaultThreads(t *testing.T) {
	dsn := connString(&config.DatabaseConfig{Path: "news.duckdb"})
	if strings.Contains(dsn, "threads=0") {
		t.Errorf("expected threads to default to CPU count, got %q", dsn)
	}
}

func TestEnsureContext(t *testing.T) {
	db := &DB{cfg: &config.DatabaseConfig{QueryTimeout: time.Second}}

	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline to be applied")
	}
	if remaining := time.Until(deadline); remaining > time.Second {
		t.Errorf("deadline too far out: %v", remaining)
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
	defer parentCancel()
	ctx2, cancel2 := db.ensureContext(parent)
	defer cancel2()
	if ctx2 != parent {
		t.Error("expected caller context with deadline to be used unchanged")
	}
}

func TestClose_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	checkNoError(t, db.Close())
	checkNoError(t, db.Close())
}
