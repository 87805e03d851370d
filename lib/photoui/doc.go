// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package photoui is the terminal photo browser: a search field above
// an infinitely scrolling list of photos, with a detail box for the
// selected photo.
//
// The model owns no feed state. It renders the snapshots a
// [feed.Session] publishes and turns keystrokes and scrolling into
// feed events: every edit of the search field goes to a
// [feed.QueryNormalizer], every scroll movement goes to a
// [feed.ScrollSampler], and the retry key calls the session directly.
// Debouncing, throttling and stale-result handling all happen in the
// feed package, so the model stays a pure projection that tests can
// drive with fakes.
//
// [TUILogHandler] routes slog records into the running program so
// warnings appear in the status line instead of corrupting the
// alt-screen.
package photoui
