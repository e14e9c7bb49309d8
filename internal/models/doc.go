// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

/*
Package models defines the data structures shared by the database and report
packages.

Base records (written by the external log loader, read-only here):

  - LogEntry: one row of the "log" table
  - Article: one row of "articles"; its request path is /article/<slug>
  - Author: one row of "authors"

Derived rows (read from the aggregate views or re-aggregated at query time):

  - ArticleViewCount: successful views per article
  - AuthorViewCount: article views summed per author
  - ErrorDay: daily access totals with the fraction of failed requests
*/
package models
