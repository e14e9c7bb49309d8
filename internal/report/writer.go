// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

// Heading is printed before the first report.
const Heading = "Log analysis starting:"

// FailureBanner is printed once when any report failed. Error detail goes to
// the log.
const FailureBanner = "One or more reports could not be produced. " +
	"If this is the first run against this database, re-run with --create_views (-c) to build the aggregate views."

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders the summary in the named format.
func Write(w io.Writer, format string, s Summary) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatText, "":
		return WriteText(w, s)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText renders the human-readable report. Failed reports keep their
// question; the failure banner follows the last report.
func WriteText(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, Heading)
	for i, res := range s.Results {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%d. %s\n", i+1, res.Question)
		for _, line := range res.Lines {
			fmt.Fprintln(bw, line)
		}
	}

	if s.Failed() {
		fmt.Fprintln(bw)
		WriteBanner(bw)
	}

	return bw.Flush()
}

// WriteBanner prints the failure banner.
func WriteBanner(w io.Writer) {
	fmt.Fprintln(w, FailureBanner)
}

type jsonSection struct {
	Question string   `json:"question"`
	Rows     any      `json:"rows"`
	Lines    []string `json:"lines"`
	Error    string   `json:"error,omitempty"`
}

type jsonReport struct {
	RunID       string                 `json:"run_id,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
	Failed      bool                   `json:"failed"`
	Reports     map[string]jsonSection `json:"reports"`
}

// WriteJSON renders the summary as one JSON object keyed by report name.
func WriteJSON(w io.Writer, s Summary) error {
	out := jsonReport{
		RunID:       s.RunID,
		GeneratedAt: s.GeneratedAt,
		Failed:      s.Failed(),
		Reports:     make(map[string]jsonSection, len(s.Results)),
	}

	for _, res := range s.Results {
		section := jsonSection{
			Question: res.Question,
			Rows:     res.Rows,
			Lines:    res.Lines,
		}
		if section.Lines == nil {
			section.Lines = []string{}
		}
		if res.Err != nil {
			section.Error = res.Err.Error()
			section.Rows = nil
		}
		out.Reports[res.Name] = section
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
