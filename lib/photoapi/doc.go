// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package photoapi is the HTTP gateway between the feed and a
// Flickr-style photo service.
//
// [Client] implements feed.Gateway. A request with a search term hits
// the search endpoint, an empty one the listing endpoint; both return
// the same envelope:
//
//	{"photos": {"page": 1, "pages": 3, "perpage": 10, "total": 25,
//	            "photo": [{"id": "...", "owner": "...", "secret": "...",
//	                       "server": "...", "farm": 66, "title": "..."}]},
//	 "stat": "ok"}
//
// Failures are classified for the feed: transport errors, non-2xx
// statuses, and "stat":"fail" envelopes are network errors; a body
// that does not decode is a decode error. GET bodies are cached by
// ETag, requests are paced by a token bucket, and every request
// carries an X-Request-ID header.
package photoapi
