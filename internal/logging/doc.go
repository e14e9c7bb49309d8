// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

// Package logging provides the zerolog-based global logger used by newslogs.
//
// Log output goes to stderr so that report lines on stdout stay clean for
// piping. Every invocation gets a short run ID which is attached to log lines
// written through Ctx.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	ctx := logging.ContextWithRunID(context.Background(), logging.GenerateRunID())
//	logging.Ctx(ctx).Info().Msg("Reports starting")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
