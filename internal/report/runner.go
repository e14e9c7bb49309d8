// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package report

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/newslogs/internal/logging"
	"github.com/tomtom215/newslogs/internal/models"
)

// Report names.
const (
	NameArticles  = "articles"
	NameAuthors   = "authors"
	NameErrorDays = "error_days"
)

// Source answers the three report queries. *database.DB implements it.
type Source interface {
	MostPopularArticles(ctx context.Context, n int) ([]models.ArticleViewCount, error)
	MostPopularAuthors(ctx context.Context, n int) ([]models.AuthorViewCount, error)
	ErrorProneDays(ctx context.Context, threshold float64) ([]models.ErrorDay, error)
}

// Options holds report cutoffs.
type Options struct {
	TopArticles    int
	TopAuthors     int
	ErrorThreshold float64
}

// Result is the outcome of one report.
type Result struct {
	Name     string
	Question string
	Lines    []string
	Rows     any
	Err      error
}

// Summary collects the results of one run in report order.
type Summary struct {
	RunID       string
	GeneratedAt time.Time
	Results     []Result
}

// Failed reports whether any report returned an error.
func (s Summary) Failed() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Err joins every report error, or returns nil when all reports succeeded.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Runner runs the three reports in sequence.
type Runner struct {
	source Source
	opts   Options
	now    func() time.Time
}

// NewRunner creates a Runner over source.
func NewRunner(source Source, opts Options) *Runner {
	return &Runner{
		source: source,
		opts:   opts,
		now:    time.Now,
	}
}

// Run executes every report. A failing report does not stop the ones after it.
func (r *Runner) Run(ctx context.Context) Summary {
	summary := Summary{
		RunID: logging.RunIDFromContext(ctx),
	}

	summary.Results = append(summary.Results, r.runArticles(ctx))
	summary.Results = append(summary.Results, r.runAuthors(ctx))
	summary.Results = append(summary.Results, r.runErrorDays(ctx))

	summary.GeneratedAt = r.now().UTC()

	log := logging.Ctx(ctx)
	for _, res := range summary.Results {
		if res.Err != nil {
			log.Warn().Str("report", res.Name).Err(res.Err).Msg("Report failed")
			continue
		}
		log.Debug().Str("report", res.Name).Int("rows", len(res.Lines)).Msg("Report completed")
	}

	return summary
}

func (r *Runner) runArticles(ctx context.Context) Result {
	res := Result{Name: NameArticles, Question: articlesQuestion(r.opts.TopArticles)}
	rows, err := r.source.MostPopularArticles(ctx, r.opts.TopArticles)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rows = rows
	res.Lines = formatLines(rows, FormatArticle)
	return res
}

func (r *Runner) runAuthors(ctx context.Context) Result {
	res := Result{Name: NameAuthors, Question: authorsQuestion(r.opts.TopAuthors)}
	rows, err := r.source.MostPopularAuthors(ctx, r.opts.TopAuthors)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rows = rows
	res.Lines = formatLines(rows, FormatAuthor)
	return res
}

func (r *Runner) runErrorDays(ctx context.Context) Result {
	res := Result{Name: NameErrorDays, Question: errorDaysQuestion(r.opts.ErrorThreshold)}
	rows, err := r.source.ErrorProneDays(ctx, r.opts.ErrorThreshold)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rows = rows
	res.Lines = formatLines(rows, FormatErrorDay)
	return res
}
