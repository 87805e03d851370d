// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package pacing

import (
	"sync"
	"time"

	"github.com/lightbox-labs/lightbox/lib/clock"
)

// Throttler invokes a function at most once per interval. The first
// call in a window runs immediately; later calls in the same window are
// dropped, not deferred. Safe for concurrent use.
type Throttler[T any] struct {
	clock    clock.Clock
	interval time.Duration
	fn       func(T)

	mutex    sync.Mutex
	last     time.Time
	hasFired bool
}

// NewThrottler returns a Throttler that passes at most one call to fn
// per interval.
func NewThrottler[T any](clk clock.Clock, interval time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{
		clock:    clk,
		interval: interval,
		fn:       fn,
	}
}

// Call invokes fn with value on the calling goroutine unless another
// call went through less than interval ago. Returns whether fn ran.
func (throttler *Throttler[T]) Call(value T) bool {
	throttler.mutex.Lock()
	now := throttler.clock.Now()
	if throttler.hasFired && now.Sub(throttler.last) < throttler.interval {
		throttler.mutex.Unlock()
		return false
	}
	throttler.last = now
	throttler.hasFired = true
	throttler.mutex.Unlock()

	throttler.fn(value)
	return true
}

// Reset opens a new window so the next Call goes through immediately.
func (throttler *Throttler[T]) Reset() {
	throttler.mutex.Lock()
	defer throttler.mutex.Unlock()
	throttler.hasFired = false
}
