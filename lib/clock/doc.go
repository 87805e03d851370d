// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock lets timing-sensitive code run against either the wall
// clock or a manually advanced one.
//
// The debounce and throttle primitives in [pacing], and everything built
// on them (query normalization, scroll sampling), take a [Clock] instead
// of calling the time package. Binaries pass [Real]; tests pass a
// [FakeClock] and drive it with Advance:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	debouncer := pacing.NewDebouncer(fake, 2*time.Second, search)
//	debouncer.Call("cat")
//	fake.Advance(2 * time.Second) // search("cat") runs here
//
// FakeClock runs AfterFunc callbacks synchronously inside Advance, in
// deadline order, so a test observes every side effect of a timer as
// soon as Advance returns.
package clock
