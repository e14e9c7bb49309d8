// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/newslogs/internal/logging"
	"github.com/tomtom215/newslogs/internal/metrics"
	"github.com/tomtom215/newslogs/internal/models"
)

// Report names used in logs and metrics.
const (
	ReportArticles  = "articles"
	ReportAuthors   = "authors"
	ReportErrorDays = "error_days"
)

// DefaultErrorThreshold is the daily error fraction at which a day is reported.
const DefaultErrorThreshold = 0.01

// MostPopularArticles returns articles by successful view count, highest first.
// Ties are broken by title. n limits the result; 0 returns every article.
func (db *DB) MostPopularArticles(ctx context.Context, n int) ([]models.ArticleViewCount, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}

	query := `SELECT title, name, path, view_count
		FROM article_view_count
		ORDER BY view_count DESC, title ASC`

	var articles []models.ArticleViewCount
	err := db.runReport(ctx, ReportArticles, ViewArticleViewCount, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			var a models.ArticleViewCount
			if err := rows.Scan(&a.Title, &a.Author, &a.Path, &a.ViewCount); err != nil {
				return fmt.Errorf("failed to scan article row: %w", err)
			}
			articles = append(articles, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	articles = truncate(articles, n)
	metrics.RecordReport(ReportArticles, len(articles), nil)
	return articles, nil
}

// MostPopularAuthors returns authors by the summed view count of their
// articles, highest first. Ties are broken by name. n limits the result; 0
// returns every author.
func (db *DB) MostPopularAuthors(ctx context.Context, n int) ([]models.AuthorViewCount, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}

	query := `SELECT name, CAST(SUM(view_count) AS BIGINT) AS total_views
		FROM article_view_count
		GROUP BY name
		ORDER BY total_views DESC, name ASC`

	var authors []models.AuthorViewCount
	err := db.runReport(ctx, ReportAuthors, ViewArticleViewCount, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			var a models.AuthorViewCount
			if err := rows.Scan(&a.Name, &a.ViewCount); err != nil {
				return fmt.Errorf("failed to scan author row: %w", err)
			}
			authors = append(authors, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	authors = truncate(authors, n)
	metrics.RecordReport(ReportAuthors, len(authors), nil)
	return authors, nil
}

// ErrorProneDays returns every day whose error fraction is at least
// threshold, oldest first. A threshold outside (0, 1] falls back to
// DefaultErrorThreshold.
func (db *DB) ErrorProneDays(ctx context.Context, threshold float64) ([]models.ErrorDay, error) {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultErrorThreshold
	}

	query := `SELECT "date", total, error_percentage
		FROM access_by_date
		WHERE error_percentage >= ?
		ORDER BY "date" ASC`

	var days []models.ErrorDay
	err := db.runReport(ctx, ReportErrorDays, ViewAccessByDate, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, threshold)
		if err != nil {
			return err
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			var d models.ErrorDay
			if err := rows.Scan(&d.Date, &d.Total, &d.ErrorPercentage); err != nil {
				return fmt.Errorf("failed to scan error day row: %w", err)
			}
			days = append(days, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordReport(ReportErrorDays, len(days), nil)
	return days, nil
}

// runReport runs one report query on a scoped connection with timing,
// classification and logging. The returned error is already classified.
func (db *DB) runReport(ctx context.Context, report, view string, fn func(context.Context, *sql.Conn) error) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := classifyQueryError(db.withConn(ctx, func(conn *sql.Conn) error {
		return fn(ctx, conn)
	}))
	duration := time.Since(start)

	metrics.RecordDBQuery("select", view, duration, errorTypeLabel(err))

	log := logging.Ctx(ctx)
	if err != nil {
		metrics.RecordReport(report, 0, err)
		log.Error().
			Str("report", report).
			Str("view", view).
			Err(err).
			Msg("Report query failed")
		return fmt.Errorf("%s report: %w", report, err)
	}

	log.Debug().
		Str("report", report).
		Str("view", view).
		Dur("duration", duration).
		Msg("Report query completed")
	return nil
}

// truncate keeps the first n rows; n = 0 keeps all of them.
func truncate[T any](rows []T, n int) []T {
	if n == 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
