// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowMovesOnlyOnAdvance(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(1500 * time.Millisecond)
	if got, want := clock.Now(), epoch.Add(1500*time.Millisecond); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeAfterDeliversAtDeadline(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(2 * time.Second)

	clock.Advance(time.Second)
	select {
	case <-channel:
		t.Fatal("After delivered before its deadline")
	default:
	}

	clock.Advance(time.Second)
	select {
	case fired := <-channel:
		if want := epoch.Add(2 * time.Second); !fired.Equal(want) {
			t.Errorf("After delivered %v, want %v", fired, want)
		}
	default:
		t.Fatal("After did not deliver at its deadline")
	}
}

func TestFakeAfterNonPositiveDeliversImmediately(t *testing.T) {
	clock := Fake(epoch)
	select {
	case <-clock.After(0):
	default:
		t.Fatal("After(0) did not deliver immediately")
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0", clock.PendingCount())
	}
}

func TestFakeAfterFuncRunsInDeadlineOrder(t *testing.T) {
	clock := Fake(epoch)
	var order []string
	clock.AfterFunc(3*time.Second, func() { order = append(order, "third") })
	clock.AfterFunc(time.Second, func() { order = append(order, "first") })
	clock.AfterFunc(2*time.Second, func() { order = append(order, "second") })

	clock.Advance(5 * time.Second)

	if want := []string{"first", "second", "third"}; !slices.Equal(order, want) {
		t.Fatalf("callbacks ran in order %v, want %v", order, want)
	}
}

func TestFakeAfterFuncStop(t *testing.T) {
	clock := Fake(epoch)
	ran := false
	timer := clock.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Fatal("Stop() on a pending timer returned false")
	}
	if timer.Stop() {
		t.Error("second Stop() returned true")
	}
	clock.Advance(time.Minute)
	if ran {
		t.Fatal("stopped timer ran")
	}
}

func TestFakeAfterFuncStopAfterFire(t *testing.T) {
	clock := Fake(epoch)
	timer := clock.AfterFunc(time.Second, func() {})
	clock.Advance(time.Second)
	if timer.Stop() {
		t.Fatal("Stop() after the timer fired returned true")
	}
}

func TestFakeCallbackSeesDeadlineAndCanReschedule(t *testing.T) {
	clock := Fake(epoch)
	var seen []time.Time
	var tick func()
	tick = func() {
		seen = append(seen, clock.Now())
		if len(seen) < 3 {
			clock.AfterFunc(time.Second, tick)
		}
	}
	clock.AfterFunc(time.Second, tick)

	clock.Advance(10 * time.Second)

	want := []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second), epoch.Add(3 * time.Second)}
	if !slices.EqualFunc(seen, want, time.Time.Equal) {
		t.Fatalf("callbacks observed %v, want %v", seen, want)
	}
	if got, want := clock.Now(), epoch.Add(10*time.Second); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestFakeWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	registered := make(chan struct{})
	go func() {
		clock.AfterFunc(time.Second, func() {})
		close(registered)
	}()

	clock.WaitForTimers(1)
	<-registered
	if clock.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", clock.PendingCount())
	}
}
