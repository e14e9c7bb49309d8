// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tomtom215/newslogs/internal/models"
)

// DateLayout renders error days as "July 17, 2016".
const DateLayout = "January 02, 2006"

// FormatArticle renders one article row: "<title>" — <count> views
func FormatArticle(a models.ArticleViewCount) string {
	return fmt.Sprintf("\"%s\" — %d views", a.Title, a.ViewCount)
}

// FormatAuthor renders one author row: <name> — <count> views
func FormatAuthor(a models.AuthorViewCount) string {
	return fmt.Sprintf("%s — %d views", a.Name, a.ViewCount)
}

// FormatErrorDay renders one error day: <Month DD, YYYY> — <pct>% views
// The stored fraction is shown as a percentage with two decimals.
func FormatErrorDay(d models.ErrorDay) string {
	return fmt.Sprintf("%s — %.2f%% views", d.Date.Format(DateLayout), d.ErrorPercentage*100)
}

// FormatThreshold renders a fraction as a percentage without trailing zeros,
// so 0.01 becomes "1%" and 0.025 becomes "2.5%".
func FormatThreshold(threshold float64) string {
	pct := math.Round(threshold*1e4) / 1e2
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func formatLines[T any](rows []T, format func(T) string) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = format(row)
	}
	return lines
}

var countWords = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

// countWord spells out small counts. 0 means no limit and yields "".
func countWord(n int) string {
	if n >= 0 && n < len(countWords) {
		return countWords[n]
	}
	return strconv.Itoa(n)
}

func articlesQuestion(n int) string {
	if n == 0 {
		return "What are the most popular articles of all time?"
	}
	if n == 1 {
		return "What is the most popular article of all time?"
	}
	return fmt.Sprintf("What are the most popular %s articles of all time?", countWord(n))
}

func authorsQuestion(n int) string {
	if n == 0 {
		return "Who are the most popular article authors of all time?"
	}
	if n == 1 {
		return "Who is the most popular article author of all time?"
	}
	return fmt.Sprintf("Who are the most popular %s article authors of all time?", countWord(n))
}

func errorDaysQuestion(threshold float64) string {
	return fmt.Sprintf("On which days did more than %s of requests lead to errors?", FormatThreshold(threshold))
}
