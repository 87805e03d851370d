// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"time"

	"github.com/lightbox-labs/lightbox/lib/clock"
	"github.com/lightbox-labs/lightbox/lib/pacing"
)

// Default scroll policy.
const (
	DefaultScrollInterval     = time.Second
	DefaultNearBottomFraction = 0.6
)

// ScrollPosition describes a scrollable container at one instant, in
// any consistent unit (terminal rows in the browser).
type ScrollPosition struct {
	// Offset is how far the container is scrolled from the top.
	Offset int
	// ViewportHeight is the visible extent.
	ViewportHeight int
	// ContentHeight is the full extent of the content.
	ContentHeight int
}

// Remaining returns the scrollable distance left below the viewport.
// Never negative.
func (position ScrollPosition) Remaining() int {
	remaining := position.ContentHeight - (position.Offset + position.ViewportHeight)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NearBottom reports whether less than fraction of a viewport height
// remains below the viewport.
func NearBottom(position ScrollPosition, fraction float64) bool {
	return float64(position.Remaining()) < fraction*float64(position.ViewportHeight)
}

// ScrollSamplerConfig configures a ScrollSampler.
type ScrollSamplerConfig struct {
	// Clock drives the throttle window. Defaults to clock.Real().
	Clock clock.Clock

	// Interval is the minimum time between examined samples.
	// Defaults to DefaultScrollInterval.
	Interval time.Duration

	// Fraction is the near-bottom threshold as a fraction of the
	// viewport height. Defaults to DefaultNearBottomFraction.
	Fraction float64

	// Emit is called for every examined sample that is near the
	// bottom. Called on the goroutine that called Observe. Required.
	Emit func()
}

// ScrollSampler converts scroll notifications into load-more events.
// It examines at most one position per interval and emits once for
// each examined position near the bottom. Consecutive emits are not
// collapsed; the Controller ignores load-more while a fetch is
// outstanding.
type ScrollSampler struct {
	throttler *pacing.Throttler[ScrollPosition]
}

// NewScrollSampler returns a ScrollSampler. Panics if config.Emit is
// nil.
func NewScrollSampler(config ScrollSamplerConfig) *ScrollSampler {
	if config.Emit == nil {
		panic("feed: ScrollSamplerConfig.Emit is required")
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultScrollInterval
	}
	fraction := config.Fraction
	if fraction <= 0 {
		fraction = DefaultNearBottomFraction
	}
	emit := config.Emit
	return &ScrollSampler{
		throttler: pacing.NewThrottler(clk, interval, func(position ScrollPosition) {
			if NearBottom(position, fraction) {
				emit()
			}
		}),
	}
}

// Observe takes one scroll notification. Returns whether the position
// was examined (as opposed to dropped by the throttle).
func (sampler *ScrollSampler) Observe(position ScrollPosition) bool {
	return sampler.throttler.Call(position)
}

// Reset opens a new throttle window, so the first position observed
// after a query change is examined immediately.
func (sampler *ScrollSampler) Reset() {
	sampler.throttler.Reset()
}
