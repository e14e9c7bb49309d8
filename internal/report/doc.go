// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

// Package report runs the three newslogs reports and renders them.
//
// Runner calls a Source (the database) once per report and collects one
// Result per report, error included, so a failing report never hides the
// others. Output is either the plain-text layout
//
//	Log analysis starting:
//	1. What are the most popular three articles of all time?
//	"Candidate is jerk, alleges rival" — 338647 views
//	...
//
// or a JSON object keyed by report name.
package report
