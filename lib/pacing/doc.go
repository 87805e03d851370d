// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package pacing provides the two rate-limiting wrappers the photo
// browser puts in front of its input events.
//
// [Debouncer] collapses a burst of calls into one trailing call carrying
// the last value, once the caller has been quiet for a full delay. It
// turns keystrokes into searches.
//
// [Throttler] lets the first call of each interval through and drops
// the rest (leading edge only, no trailing call). It bounds how often
// scroll positions are examined regardless of how fast the terminal
// reports them.
//
// Both schedule against a [clock.Clock] and know nothing about what the
// wrapped function does.
package pacing
