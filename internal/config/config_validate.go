// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package config

import (
	"fmt"

	"github.com/tomtom215/newslogs/internal/validation"
)

// Validate checks struct-tag constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return c.validateDatabase()
}

// validateDatabase rejects combinations DuckDB cannot open.
func (c *Config) validateDatabase() error {
	if c.Database.ReadOnly && c.Database.Path == ":memory:" {
		return fmt.Errorf("database.read_only cannot be used with an in-memory database")
	}
	return nil
}

// CanRebuildAggregates reports whether the configured database accepts DDL.
func (c *Config) CanRebuildAggregates() bool {
	return !c.Database.ReadOnly
}
