// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

// Command newslogs prints three reports from a news site's access log
// database:
//
//  1. the most popular articles of all time
//  2. the most popular article authors of all time
//  3. the days on which more than 1% of requests led to errors
//
// The reports read two aggregate views, article_view_count and
// access_by_date. They are created on the first run with --create_views:
//
//	newslogs --create_views
//	newslogs
//
// # Flags
//
//	-c, --create_views        drop and recreate the aggregate views first
//	    --config PATH         YAML config file
//	    --top-articles N      articles to report, 0 for all (default 3)
//	    --top-authors N       authors to report, 0 for all (default 0)
//	    --error-threshold F   daily error fraction to report (default 0.01)
//	    --format text|json    output format (default text)
//	    --version             print the version
//
// # Configuration
//
// Settings are layered: built-in defaults, then the config file, then the
// environment (a .env file in the working directory is loaded first). Flags
// that are set explicitly win over all three.
//
//	DUCKDB_PATH            database file (default news.duckdb)
//	DUCKDB_READ_ONLY       open the database read-only
//	DUCKDB_QUERY_TIMEOUT   per-query timeout (default 30s)
//	TOP_ARTICLES           article cutoff
//	TOP_AUTHORS            author cutoff
//	ERROR_THRESHOLD        error-day threshold
//	REPORT_FORMAT          text or json
//	LOG_LEVEL, LOG_FORMAT  logging (stderr)
//	METRICS_TEXTFILE       write Prometheus metrics to this file at exit
//
// # Exit Status
//
// 0 when every report succeeded, 1 when a report or the view rebuild failed,
// and 2 for invalid flags or configuration.
package main
