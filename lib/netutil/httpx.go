// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP body reads.
//
// Photo API pages are small; a body past MaxResponseSize means a
// misbehaving server, and reading it whole would only burn memory.
package netutil

import (
	"fmt"
	"io"
)

// MaxResponseSize bounds API response body reads: 16 MB.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a response body. Bodies longer than
// MaxResponseSize are an error rather than silently truncated.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)
	}
	return data, nil
}

// ErrorBody reads an error response body for use in a message. Read
// errors are ignored; a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))
	return string(data)
}
