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
)

// Aggregate view names.
const (
	ViewArticleViewCount = "article_view_count"
	ViewAccessByDate     = "access_by_date"
)

// aggregateView is one derived view and the statement that creates it.
type aggregateView struct {
	name   string
	create string
}

// aggregateViews lists the views in creation order.
//
// article_view_count counts successful requests per article path.
// access_by_date holds the daily request total and the fraction of requests
// that did not return "200 OK".
var aggregateViews = []aggregateView{
	{
		name: ViewArticleViewCount,
		create: `CREATE VIEW article_view_count AS
			SELECT
				articles.title AS title,
				authors.name AS name,
				"log".path AS path,
				COUNT(*) AS view_count
			FROM "log"
			JOIN articles ON "log".path = '/article/' || articles.slug
			JOIN authors ON articles.author = authors.id
			WHERE "log".status = '200 OK'
			GROUP BY articles.title, authors.name, "log".path
			ORDER BY view_count DESC`,
	},
	{
		name: ViewAccessByDate,
		create: `CREATE VIEW access_by_date AS
			SELECT
				CAST("log"."time" AS DATE) AS "date",
				COUNT(*) AS total,
				CAST(COUNT(*) FILTER (WHERE "log".status <> '200 OK') AS DOUBLE) / COUNT(*) AS error_percentage
			FROM "log"
			GROUP BY CAST("log"."time" AS DATE)
			ORDER BY "date" ASC`,
	},
}

// RebuildAggregates drops and recreates both aggregate views. Drop failures
// are logged and ignored; a create failure is returned wrapped in
// ErrAggregateRebuild. Calling it repeatedly yields the same views.
func (db *DB) RebuildAggregates(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	log := logging.Ctx(ctx)
	start := time.Now()

	err := db.withConn(ctx, func(conn *sql.Conn) error {
		for _, view := range aggregateViews {
			dropStart := time.Now()
			_, dropErr := conn.ExecContext(ctx, "DROP VIEW IF EXISTS "+view.name)
			metrics.RecordDBQuery("drop_view", view.name, time.Since(dropStart), errorTypeLabel(classifyQueryError(dropErr)))
			if dropErr != nil {
				log.Warn().Str("view", view.name).Err(dropErr).Msg("Failed to drop aggregate view, continuing")
			}

			createStart := time.Now()
			_, createErr := conn.ExecContext(ctx, view.create)
			metrics.RecordDBQuery("create_view", view.name, time.Since(createStart), errorTypeLabel(classifyQueryError(createErr)))
			if createErr != nil {
				return fmt.Errorf("%w: create %s: %w", ErrAggregateRebuild, view.name, createErr)
			}
			log.Debug().Str("view", view.name).Msg("Aggregate view created")
		}
		return nil
	})

	metrics.RecordRebuild(err)
	if err != nil {
		log.Error().Err(err).Msg("Aggregate rebuild failed")
		return err
	}

	log.Info().
		Int("views", len(aggregateViews)).
		Dur("duration", time.Since(start)).
		Msg("Aggregate views rebuilt")
	return nil
}

// AggregatesExist reports whether both aggregate views are present.
func (db *DB) AggregatesExist(ctx context.Context) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int
	err := db.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.tables
			WHERE table_type = 'VIEW' AND table_name IN (?, ?)`,
			ViewArticleViewCount, ViewAccessByDate,
		).Scan(&count)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check aggregate views: %w", classifyQueryError(err))
	}
	return count == len(aggregateViews), nil
}
