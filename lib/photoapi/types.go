// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoapi

import "github.com/lightbox-labs/lightbox/lib/feed"

// Stat values carried by Envelope.
const (
	StatOK   = "ok"
	StatFail = "fail"
)

// Envelope is the top-level response body. A successful response has
// Stat "ok" and Photos set; a failed one has Stat "fail" with Code and
// Message.
type Envelope struct {
	Photos  *PhotoPage `json:"photos,omitempty"`
	Stat    string     `json:"stat"`
	Code    int        `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
}

// PhotoPage is one page of results.
type PhotoPage struct {
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	PerPage int     `json:"perpage"`
	Total   int     `json:"total"`
	Photo   []Photo `json:"photo"`
}

// Photo is a single result. Server and Secret locate the image files.
type Photo struct {
	ID     string `json:"id"`
	Owner  string `json:"owner"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Farm   int    `json:"farm"`
	Title  string `json:"title"`
}

// Item converts the wire photo to a feed item.
func (photo Photo) Item() feed.Item {
	return feed.Item{
		ID:     photo.ID,
		Title:  photo.Title,
		Owner:  photo.Owner,
		Server: photo.Server,
		Secret: photo.Secret,
		Farm:   photo.Farm,
	}
}

// ErrorBody is the body of an error response from the mock service's
// /errors routes: {"error": {"statusCode": 503, "message": "..."}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the inner object of ErrorBody.
type ErrorDetail struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
