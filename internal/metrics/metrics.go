// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const queryDurationName = "newslogs_query_duration_seconds"

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    queryDurationName,
			Help:    "Duration of DuckDB report and rebuild statements in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "view"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslogs_query_errors_total",
			Help: "Total number of failed DuckDB statements",
		},
		[]string{"operation", "view", "error_type"}, // error_type: "aggregate_missing", "connection", "query"
	)

	// Report Metrics
	ReportRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newslogs_report_rows",
			Help: "Rows printed by the last run of each report",
		},
		[]string{"report"},
	)

	ReportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslogs_report_failures_total",
			Help: "Total number of reports that returned an error",
		},
		[]string{"report"},
	)

	AggregateRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslogs_aggregate_rebuilds_total",
			Help: "Total number of aggregate view rebuilds",
		},
		[]string{"status"}, // "success", "failure"
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newslogs_last_run_timestamp_seconds",
			Help: "Unix time the last report run finished",
		},
	)
)

// RecordDBQuery records one statement. An empty errorType means success.
func RecordDBQuery(operation, view string, duration time.Duration, errorType string) {
	DBQueryDuration.WithLabelValues(operation, view).Observe(duration.Seconds())
	if errorType != "" {
		DBQueryErrors.WithLabelValues(operation, view, errorType).Inc()
	}
}

// RecordReport records the outcome of one report.
func RecordReport(report string, rows int, err error) {
	if err != nil {
		ReportFailures.WithLabelValues(report).Inc()
		ReportRows.WithLabelValues(report).Set(0)
		return
	}
	ReportRows.WithLabelValues(report).Set(float64(rows))
}

// RecordRebuild records an aggregate rebuild attempt.
func RecordRebuild(err error) {
	if err != nil {
		AggregateRebuilds.WithLabelValues("failure").Inc()
		return
	}
	AggregateRebuilds.WithLabelValues("success").Inc()
}

// MarkRunFinished stamps the end of a report run.
func MarkRunFinished(at time.Time) {
	LastRunTimestamp.Set(float64(at.Unix()))
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format. The file is written atomically, as node_exporter's textfile
// collector expects.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(path, prometheus.DefaultGatherer)
}

// WriteTextfileFrom is WriteTextfile with an explicit gatherer.
func WriteTextfileFrom(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

// QueryStats sums the query duration histogram across all label values.
func QueryStats() (count uint64, seconds float64, err error) {
	return QueryStatsFrom(prometheus.DefaultGatherer)
}

// QueryStatsFrom is QueryStats with an explicit gatherer.
func QueryStatsFrom(g prometheus.Gatherer) (count uint64, seconds float64, err error) {
	families, err := g.Gather()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if mf.GetName() != queryDurationName || mf.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		for _, m := range mf.GetMetric() {
			h := m.GetHistogram()
			count += h.GetSampleCount()
			seconds += h.GetSampleSum()
		}
	}
	return count, seconds, nil
}
