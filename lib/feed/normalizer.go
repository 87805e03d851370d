// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lightbox-labs/lightbox/lib/clock"
	"github.com/lightbox-labs/lightbox/lib/pacing"
)

// Default input policy.
const (
	DefaultMinQueryLength = 3
	DefaultQuietPeriod    = 2 * time.Second
)

// QueryNormalizerConfig configures a QueryNormalizer.
type QueryNormalizerConfig struct {
	// Clock schedules the quiet period. Defaults to clock.Real().
	Clock clock.Clock

	// MinLength is the shortest trimmed input, in characters, that
	// starts a search. Defaults to DefaultMinQueryLength.
	MinLength int

	// Quiet is how long typing must pause before a search starts.
	// Defaults to DefaultQuietPeriod.
	Quiet time.Duration

	// Emit receives the query text once typing has paused. Called on
	// the clock's timer goroutine. Required.
	Emit func(text string)
}

// QueryNormalizer turns raw search-field contents into query-changed
// events: one per pause in typing, and none for input that is too
// short to search on.
type QueryNormalizer struct {
	minLength int
	debouncer *pacing.Debouncer[string]
}

// NewQueryNormalizer returns a QueryNormalizer. Panics if config.Emit
// is nil.
func NewQueryNormalizer(config QueryNormalizerConfig) *QueryNormalizer {
	if config.Emit == nil {
		panic("feed: QueryNormalizerConfig.Emit is required")
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	minLength := config.MinLength
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}
	quiet := config.Quiet
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &QueryNormalizer{
		minLength: minLength,
		debouncer: pacing.NewDebouncer(clk, quiet, config.Emit),
	}
}

// Input takes the search field's full contents after a change. Input
// shorter than the minimum length clears the search: any pending
// search is dropped and nothing is emitted.
func (normalizer *QueryNormalizer) Input(text string) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < normalizer.minLength {
		normalizer.debouncer.Cancel()
		return
	}
	normalizer.debouncer.Call(text)
}

// Pending reports whether a search is waiting for typing to pause.
func (normalizer *QueryNormalizer) Pending() bool {
	return normalizer.debouncer.Pending()
}

// Stop drops any pending search.
func (normalizer *QueryNormalizer) Stop() {
	normalizer.debouncer.Cancel()
}
