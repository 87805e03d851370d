// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a Clock whose time moves only when Advance is called.
// Safe for concurrent use.
type FakeClock struct {
	mutex    sync.Mutex
	changed  *sync.Cond
	current  time.Time
	sequence uint64
	pending  []*scheduled
}

// scheduled is a timer registered with a FakeClock. Exactly one of
// channel and callback is set.
type scheduled struct {
	deadline time.Time
	// order breaks deadline ties in registration order.
	order    uint64
	channel  chan time.Time
	callback func()
	done     bool
}

// Fake returns a FakeClock reading initial until advanced.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.changed = sync.NewCond(&clock.mutex)
	return clock
}

// Now returns the fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.current
}

// After returns a channel that receives when the clock has advanced
// by at least d.
func (clock *FakeClock) After(d time.Duration) <-chan time.Time {
	channel := make(chan time.Time, 1)

	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	if d <= 0 {
		channel <- clock.current
		return channel
	}
	clock.scheduleLocked(&scheduled{deadline: clock.current.Add(d), channel: channel})
	return channel
}

// AfterFunc registers f to run during the Advance call that moves the
// clock past now+d. A non-positive d runs f before AfterFunc returns.
func (clock *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stop: func() bool { return false }}
	}

	clock.mutex.Lock()
	entry := &scheduled{deadline: clock.current.Add(d), callback: f}
	clock.scheduleLocked(entry)
	clock.mutex.Unlock()

	return &Timer{stop: func() bool {
		clock.mutex.Lock()
		defer clock.mutex.Unlock()
		if entry.done {
			return false
		}
		entry.done = true
		clock.changed.Broadcast()
		return true
	}}
}

func (clock *FakeClock) scheduleLocked(entry *scheduled) {
	clock.sequence++
	entry.order = clock.sequence
	clock.pending = append(clock.pending, entry)
	clock.changed.Broadcast()
}

// Advance moves the clock forward by d and fires every timer whose
// deadline is at or before the new time, earliest first. Callbacks
// run on the calling goroutine; a callback may register new timers,
// and those fire too if they fall inside the advanced window.
//
// Callbacks must not call Advance.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	target := clock.current.Add(d)
	clock.mutex.Unlock()

	for {
		entry := clock.nextDue(target)
		if entry == nil {
			break
		}
		if entry.callback != nil {
			entry.callback()
		} else {
			entry.channel <- entry.deadline
		}
	}

	clock.mutex.Lock()
	clock.current = target
	clock.mutex.Unlock()
}

// nextDue removes and returns the earliest live timer due at or before
// target, moving the clock to its deadline. Returns nil when none is
// due.
func (clock *FakeClock) nextDue(target time.Time) *scheduled {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	live := clock.pending[:0]
	for _, entry := range clock.pending {
		if !entry.done {
			live = append(live, entry)
		}
	}
	clock.pending = live

	sort.Slice(clock.pending, func(i, j int) bool {
		left, right := clock.pending[i], clock.pending[j]
		if left.deadline.Equal(right.deadline) {
			return left.order < right.order
		}
		return left.deadline.Before(right.deadline)
	})

	if len(clock.pending) == 0 || clock.pending[0].deadline.After(target) {
		return nil
	}

	entry := clock.pending[0]
	clock.pending = clock.pending[1:]
	entry.done = true
	if entry.deadline.After(clock.current) {
		clock.current = entry.deadline
	}
	clock.changed.Broadcast()
	return entry
}

// PendingCount returns how many timers are registered and not yet
// fired or stopped.
func (clock *FakeClock) PendingCount() int {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.pendingLocked()
}

// WaitForTimers blocks until at least n timers are pending. Use it
// when another goroutine registers the timer the test is about to
// fire.
func (clock *FakeClock) WaitForTimers(n int) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	for clock.pendingLocked() < n {
		clock.changed.Wait()
	}
}

func (clock *FakeClock) pendingLocked() int {
	count := 0
	for _, entry := range clock.pending {
		if !entry.done {
			count++
		}
	}
	return count
}
