// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package photomock is a stand-in photo service for development and
// tests.
//
// A [Store] keeps a photo catalog in SQLite and answers paged title
// searches and listings. [NewHandler] serves it over HTTP in the same
// envelope a Flickr-style service uses:
//
//	GET /photos/search?text=cat&page=2&per_page=10[&format=cbor]
//	GET /photos?page=1&per_page=10[&format=cbor]
//	GET /errors/503
//
// The /errors routes answer with the given status and a JSON error
// body, so clients can exercise their failure paths. An optional
// artificial latency makes responses arrive late enough to race each
// other. Every page carries a strong ETag and conditional requests are
// answered with 304.
package photomock
