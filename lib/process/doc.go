// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for Lightbox
// commands: reporting an error from main() before or after the
// structured logger exists, and choosing the exit code.
package process
