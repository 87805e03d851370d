// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package pacing

import (
	"sync"
	"time"

	"github.com/lightbox-labs/lightbox/lib/clock"
)

// Debouncer delays calls to a function until the caller has stopped
// calling for a full quiet period, then invokes it once with the most
// recent value. Safe for concurrent use.
type Debouncer[T any] struct {
	clock clock.Clock
	delay time.Duration
	fn    func(T)

	mutex sync.Mutex
	timer *clock.Timer
	value T
	// generation increments on every Call and Cancel. A timer that
	// fires with a stale generation lost a race with Stop and must
	// not invoke fn.
	generation uint64
}

// NewDebouncer returns a Debouncer that calls fn after delay of
// silence. fn runs on the clock's timer goroutine.
func NewDebouncer[T any](clk clock.Clock, delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		clock: clk,
		delay: delay,
		fn:    fn,
	}
}

// Call records value and restarts the quiet period. Earlier values
// that have not fired yet are discarded.
func (debouncer *Debouncer[T]) Call(value T) {
	if debouncer.delay <= 0 {
		debouncer.Cancel()
		debouncer.fn(value)
		return
	}

	debouncer.mutex.Lock()
	defer debouncer.mutex.Unlock()

	if debouncer.timer != nil {
		debouncer.timer.Stop()
	}
	debouncer.generation++
	debouncer.value = value
	generation := debouncer.generation
	debouncer.timer = debouncer.clock.AfterFunc(debouncer.delay, func() {
		debouncer.fire(generation)
	})
}

func (debouncer *Debouncer[T]) fire(generation uint64) {
	debouncer.mutex.Lock()
	if generation != debouncer.generation || debouncer.timer == nil {
		debouncer.mutex.Unlock()
		return
	}
	value := debouncer.value
	var zero T
	debouncer.value = zero
	debouncer.timer = nil
	debouncer.mutex.Unlock()

	debouncer.fn(value)
}

// Cancel drops the pending call, if any, without invoking fn.
func (debouncer *Debouncer[T]) Cancel() {
	debouncer.mutex.Lock()
	defer debouncer.mutex.Unlock()

	debouncer.generation++
	if debouncer.timer != nil {
		debouncer.timer.Stop()
		debouncer.timer = nil
	}
	var zero T
	debouncer.value = zero
}

// Pending reports whether a call is waiting for its quiet period to
// end.
func (debouncer *Debouncer[T]) Pending() bool {
	debouncer.mutex.Lock()
	defer debouncer.mutex.Unlock()
	return debouncer.timer != nil
}
