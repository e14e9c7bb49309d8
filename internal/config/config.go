// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package config

import "time"

// Config holds all newslogs configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Report   ReportConfig   `koanf:"report"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// DatabaseConfig holds DuckDB connection settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file, or ":memory:".
	Path string `koanf:"path" validate:"required"`

	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use NumCPU

	// ReadOnly opens the file with access_mode=read_only. Rebuilding the
	// aggregates is not possible in this mode.
	ReadOnly bool `koanf:"read_only"`

	// QueryTimeout bounds a single report query when the caller has no deadline.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gt=0"`
}

// ReportConfig holds report cutoffs and output settings.
type ReportConfig struct {
	// TopArticles limits the article report; 0 prints every article.
	TopArticles int `koanf:"top_articles" validate:"gte=0"`

	// TopAuthors limits the author report; 0 prints every author.
	TopAuthors int `koanf:"top_authors" validate:"gte=0"`

	// ErrorThreshold is the minimum daily error fraction reported as error prone.
	ErrorThreshold float64 `koanf:"error_threshold" validate:"gt=0,lte=1"`

	// Format is the stdout format: text or json.
	Format string `koanf:"format" validate:"oneof=text json"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives the run's metrics in Prometheus text
	// format (node_exporter textfile collector).
	TextfilePath string `koanf:"textfile_path"`
}
