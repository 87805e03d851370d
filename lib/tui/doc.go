// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the terminal widgets shared by Lightbox's views:
// the color theme, a scrollbar renderer, and ANSI-aware overlay
// splicing for modals drawn over the photo list.
package tui
