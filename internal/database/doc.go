// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

/*
Package database provides the DuckDB data access layer for newslogs.

The database holds three base tables loaded by an external process:

	log(path, status, time)       one row per HTTP request
	articles(title, slug, author) author references authors.id
	authors(id, name)

Two views are derived from them:

	article_view_count  successful ("200 OK") requests per article, joined to
	                    the article title and author name
	access_by_date      request total and error fraction per calendar day

RebuildAggregates drops and recreates both views. The views are live, so every
report reads current table contents; rebuilding is only needed once per
database or after the view definitions change.

# Reports

	MostPopularArticles(ctx, n)         top n articles by view count
	MostPopularAuthors(ctx, n)          top n authors by summed view count
	ErrorProneDays(ctx, threshold)      days with error fraction >= threshold

A limit of 0 returns every row. Each report acquires one pooled connection,
runs one query, and releases the connection before returning.

# Errors

Driver errors are classified into sentinels for errors.Is:

	ErrAggregateMissing  a view was never created; rebuild to fix
	ErrAggregateRebuild  creating a view failed
	ErrConnection        the database could not be reached
	ErrInvalidLimit      negative report limit

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	if err := db.RebuildAggregates(ctx); err != nil {
	    return err
	}
	articles, err := db.MostPopularArticles(ctx, 3)
*/
package database
