// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

// Item is one photo in the feed. Identity is ID; the remaining fields
// are what the browser needs to label the photo and build its image
// URLs.
type Item struct {
	ID     string
	Title  string
	Owner  string
	Server string
	Secret string
	Farm   int
}

// Query is an immutable search. Empty Text selects the unfiltered
// listing.
type Query struct {
	Text string
}

// IsListing reports whether the query browses without a search term.
func (query Query) IsListing() bool {
	return query.Text == ""
}

// PageResult is one page returned by a Gateway.
type PageResult struct {
	Items []Item

	// Number is the page number the backend served. Zero means the
	// backend did not say; the requested page is assumed.
	Number int

	// Pages is the total page count for the query, or zero when the
	// backend does not report it.
	Pages int
}
