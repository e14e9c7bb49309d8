// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package database

import (
	"errors"
	"math"
	"testing"
)

// Test assertion helpers with "check" prefix.
// Using t.Helper() ensures error messages point to the calling line.

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkErrorIs fails the test unless err matches target
func checkErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected errors.Is(err, %v), got %v", target, err)
	}
}

// checkStringEqual checks that got equals want
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkInt64Equal checks that got equals want
func checkInt64Equal(t *testing.T, fieldName string, got, want int64) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkLen fails the test if the slice length is not want
func checkLen(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected %d rows, got %d", fieldName, want, got)
	}
}

// checkFloatNear checks that got is within 1e-9 of want
func checkFloatNear(t *testing.T, fieldName string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", fieldName, want, got)
	}
}

// checkSortedDescending checks that counts never increase
func checkSortedDescending(t *testing.T, fieldName string, counts []int64) {
	t.Helper()
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("%s not sorted descending at index %d: %d > %d", fieldName, i, counts[i], counts[i-1])
		}
	}
}
