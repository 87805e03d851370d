// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package pacing

import (
	"slices"
	"testing"
	"time"

	"github.com/lightbox-labs/lightbox/lib/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDebouncerCoalescesBurstIntoLastValue(t *testing.T) {
	fake := clock.Fake(epoch)
	var calls []string
	debouncer := NewDebouncer(fake, 2*time.Second, func(value string) {
		calls = append(calls, value)
	})

	for _, keystroke := range []string{"c", "ca", "cat", "cats"} {
		debouncer.Call(keystroke)
		fake.Advance(1999 * time.Millisecond)
	}
	if len(calls) != 0 {
		t.Fatalf("debounced function ran during the burst: %v", calls)
	}

	fake.Advance(time.Millisecond)
	if want := []string{"cats"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	fake.Advance(time.Hour)
	if len(calls) != 1 {
		t.Fatalf("debounced function ran %d times, want 1", len(calls))
	}
}

func TestDebouncerCoalescingProperty(t *testing.T) {
	for _, spacing := range []time.Duration{0, time.Millisecond, 500 * time.Millisecond, 1999 * time.Millisecond} {
		for _, count := range []int{1, 2, 7, 40} {
			fake := clock.Fake(epoch)
			var calls []int
			debouncer := NewDebouncer(fake, 2*time.Second, func(value int) {
				calls = append(calls, value)
			})
			for index := range count {
				debouncer.Call(index)
				fake.Advance(spacing)
			}
			fake.Advance(2 * time.Second)

			if len(calls) != 1 || calls[0] != count-1 {
				t.Errorf("spacing %v, %d calls: got invocations %v, want [%d]", spacing, count, calls, count-1)
			}
		}
	}
}

func TestDebouncerSeparatePausesFireSeparately(t *testing.T) {
	fake := clock.Fake(epoch)
	var calls []string
	debouncer := NewDebouncer(fake, 2*time.Second, func(value string) {
		calls = append(calls, value)
	})

	debouncer.Call("cat")
	fake.Advance(3 * time.Second)
	debouncer.Call("dog")
	fake.Advance(3 * time.Second)

	if want := []string{"cat", "dog"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestDebouncerCancel(t *testing.T) {
	fake := clock.Fake(epoch)
	ran := false
	debouncer := NewDebouncer(fake, time.Second, func(string) { ran = true })

	debouncer.Call("cat")
	if !debouncer.Pending() {
		t.Fatal("Pending() = false after Call")
	}
	debouncer.Cancel()
	if debouncer.Pending() {
		t.Fatal("Pending() = true after Cancel")
	}

	fake.Advance(time.Minute)
	if ran {
		t.Fatal("cancelled call ran")
	}
	if fake.PendingCount() != 0 {
		t.Errorf("clock has %d pending timers after Cancel, want 0", fake.PendingCount())
	}
}

func TestDebouncerZeroDelayCallsThrough(t *testing.T) {
	fake := clock.Fake(epoch)
	var calls []string
	debouncer := NewDebouncer(fake, 0, func(value string) { calls = append(calls, value) })

	debouncer.Call("a")
	debouncer.Call("b")
	if want := []string{"a", "b"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}
