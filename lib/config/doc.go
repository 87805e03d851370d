// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Lightbox
// binaries.
//
// A configuration file is named either by the --config flag (via
// [LoadFile]) or the LIGHTBOX_CONFIG environment variable (via
// [Load]). [Resolve] applies that precedence and falls back to
// [Default] when neither is set, so the browser runs against a local
// mock service out of the box. There is no other file discovery.
//
// The file may carry development and production sections that
// override base values when [Config].Environment matches. Production
// without an explicit section paces API requests and logs at warn.
//
// After loading, ${VAR} and ${VAR:-default} patterns are expanded in
// URL and path fields. No environment variable overrides a value
// directly.
//
// Durations are YAML strings in time.ParseDuration form ("2s",
// "750ms").
//
// This package depends on no other Lightbox packages.
package config
