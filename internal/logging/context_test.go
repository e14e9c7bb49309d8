// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 8 {
		t.Errorf("expected run ID length 8, got %d", len(id1))
	}
	if id1 == id2 {
		t.Errorf("expected unique run IDs, got %q twice", id1)
	}
}

func TestRunIDFromContext(t *testing.T) {
	t.Parallel()

	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}

	ctx := ContextWithRunID(context.Background(), "abc12345")
	if got := RunIDFromContext(ctx); got != "abc12345" {
		t.Errorf("RunIDFromContext() = %q, want abc12345", got)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRunID(context.Background(), "run-123")
	Ctx(ctx).Info().Msg("context test")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-123"`) {
		t.Errorf("expected run_id in output: %s", output)
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("no run id")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("expected no run_id in output: %s", buf.String())
	}
}
