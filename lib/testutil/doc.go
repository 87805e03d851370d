// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Lightbox packages.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern for waiting on channels fed by other goroutines (session
// snapshots, gateway calls). They are the only place tests use a wall
// clock; everything timing-related in the code under test runs on a
// [clock.FakeClock].
//
// [WriteFile] materializes fixture files (configuration, mock seeds)
// in a per-test temporary directory.
//
// All helpers call t.Fatalf on failure.
package testutil
