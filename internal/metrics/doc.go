// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

// Package metrics holds the Prometheus collectors for newslogs.
//
// newslogs is a short-lived CLI, so nothing is served over HTTP. When
// metrics.textfile_path (METRICS_TEXTFILE) is set, the command writes the
// default registry to that file at exit for node_exporter's textfile
// collector to pick up:
//
//	newslogs_query_duration_seconds{operation,view}
//	newslogs_query_errors_total{operation,view,error_type}
//	newslogs_report_rows{report}
//	newslogs_report_failures_total{report}
//	newslogs_aggregate_rebuilds_total{status}
//	newslogs_last_run_timestamp_seconds
package metrics
