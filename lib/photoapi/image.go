// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoapi

import (
	"strings"

	"github.com/lightbox-labs/lightbox/lib/feed"
)

// ImageSize is the size suffix of an image URL.
type ImageSize string

const (
	// SizeThumbnail is the grid thumbnail.
	SizeThumbnail ImageSize = "w"
	// SizeMedium is the detail view image.
	SizeMedium ImageSize = "m"
)

// ImageURL builds <base>/<server>/<id>_<secret>_<size>.jpg.
func ImageURL(base string, item feed.Item, size ImageSize) string {
	var builder strings.Builder
	builder.WriteString(strings.TrimRight(base, "/"))
	builder.WriteByte('/')
	builder.WriteString(item.Server)
	builder.WriteByte('/')
	builder.WriteString(item.ID)
	builder.WriteByte('_')
	builder.WriteString(item.Secret)
	builder.WriteByte('_')
	builder.WriteString(string(size))
	builder.WriteString(".jpg")
	return builder.String()
}
