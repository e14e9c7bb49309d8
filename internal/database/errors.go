// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/newslogs/internal/logging"
)

var (
	// ErrAggregateMissing means a report ran before its aggregate view was
	// created. Rebuilding the aggregates fixes it.
	ErrAggregateMissing = errors.New("aggregate view does not exist")

	// ErrAggregateRebuild means creating an aggregate view failed, usually
	// because a base table is missing or malformed.
	ErrAggregateRebuild = errors.New("failed to rebuild aggregate views")

	// ErrConnection means the database could not be reached.
	ErrConnection = errors.New("database connection failed")

	// ErrInvalidLimit is returned for a negative report cutoff.
	ErrInvalidLimit = errors.New("limit must be zero (all rows) or positive")
)

// Error type labels used for metrics.
const (
	errorTypeAggregateMissing = "aggregate_missing"
	errorTypeConnection       = "connection"
	errorTypeQuery            = "query"
)

// classifyQueryError wraps a driver error with the matching sentinel. Errors
// that match no sentinel are returned unchanged.
func classifyQueryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAggregateMissing), errors.Is(err, ErrConnection):
		return err
	case isMissingAggregate(err):
		return fmt.Errorf("%w: %w", ErrAggregateMissing, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %w", ErrConnection, err)
	default:
		return err
	}
}

// errorTypeLabel maps a classified error to its metrics label. nil maps to "".
func errorTypeLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAggregateMissing):
		return errorTypeAggregateMissing
	case errors.Is(err, ErrConnection):
		return errorTypeConnection
	default:
		return errorTypeQuery
	}
}

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
