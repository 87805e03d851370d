// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import "context"

// Gateway fetches one page of photos for a query.
//
// Implementations may complete concurrent fetches in any order and
// need not abandon superseded ones; the Controller discards stale
// completions itself. Errors should be *FetchError values (see
// [NetworkError] and [DecodeError]); anything else is treated as a
// network failure.
type Gateway interface {
	Fetch(ctx context.Context, request Request) (PageResult, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, request Request) (PageResult, error)

// Fetch calls function(ctx, request).
func (function GatewayFunc) Fetch(ctx context.Context, request Request) (PageResult, error) {
	return function(ctx, request)
}
