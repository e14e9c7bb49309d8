// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package models

import "time"

// StatusOK is the exact status text marking a successful request.
const StatusOK = "200 OK"

// ArticlePathPrefix is prepended to an article slug to form its request path.
const ArticlePathPrefix = "/article/"

// LogEntry is a single web-server access log record.
type LogEntry struct {
	Path   string    `json:"path"`
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Success reports whether the request returned exactly "200 OK".
func (e LogEntry) Success() bool {
	return e.Status == StatusOK
}

// Article is a published news article.
type Article struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	AuthorID int64  `json:"author"`
}

// Path returns the request path the article is served from.
func (a Article) Path() string {
	return ArticlePathPrefix + a.Slug
}

// Author is an article author.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArticleViewCount is one row of the article_view_count aggregate.
type ArticleViewCount struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Path      string `json:"path"`
	ViewCount int64  `json:"view_count"`
}

// AuthorViewCount is an author with views summed across all their articles.
type AuthorViewCount struct {
	Name      string `json:"name"`
	ViewCount int64  `json:"view_count"`
}

// ErrorDay is one row of the access_by_date aggregate.
type ErrorDay struct {
	Date            time.Time `json:"date"`
	Total           int64     `json:"total"`
	ErrorPercentage float64   `json:"error_percentage"` // fraction in [0,1]
}
