// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

// Package config loads newslogs configuration with Koanf v2.
//
// Sources, lowest to highest priority:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML file: --config, CONFIG_PATH, ./newslogs.yaml, ./newslogs.yml,
//     /etc/newslogs/config.yaml
//  3. Environment variables, after a ./.env file is loaded with godotenv
//
// Environment variables:
//   - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DUCKDB_READ_ONLY,
//     DUCKDB_QUERY_TIMEOUT
//   - TOP_ARTICLES, TOP_AUTHORS, ERROR_THRESHOLD, REPORT_FORMAT
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//   - METRICS_TEXTFILE
//
// Example config.yaml:
//
//	database:
//	  path: /var/lib/news/news.duckdb
//	  read_only: true
//	report:
//	  top_articles: 3
//	  error_threshold: 0.01
//	logging:
//	  level: debug
//	  format: console
package config
