// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failure reported by the photo service: either a non-2xx
// status or a 2xx response whose envelope says "stat":"fail".
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the service's error code from a "stat":"fail" envelope.
	// Zero for plain HTTP failures.
	Code int

	// Message describes the failure. Falls back to the raw body when
	// the body is not a recognised error shape.
	Message string

	// RequestID is the X-Request-ID the request was sent with.
	RequestID string
}

func (err *APIError) Error() string {
	if err.Code != 0 {
		return fmt.Sprintf("photoapi: HTTP %d: code %d: %s", err.StatusCode, err.Code, err.Message)
	}
	if err.Message == "" {
		return fmt.Sprintf("photoapi: HTTP %d %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("photoapi: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err carries a 404 from the photo service.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsServerError reports whether err carries a 5xx from the photo
// service.
func IsServerError(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode >= 500
}

// parseAPIError builds an APIError from a non-2xx response body. Error
// bodies are always JSON, whatever format was requested.
func parseAPIError(statusCode int, body []byte, requestID string) *APIError {
	apiError := &APIError{StatusCode: statusCode, RequestID: requestID}

	var wrapped ErrorBody
	if json.Unmarshal(body, &wrapped) == nil && (wrapped.Error.Message != "" || wrapped.Error.StatusCode != 0) {
		apiError.Message = wrapped.Error.Message
		return apiError
	}
	var envelope Envelope
	if json.Unmarshal(body, &envelope) == nil && envelope.Stat == StatFail {
		apiError.Code = envelope.Code
		apiError.Message = envelope.Message
		return apiError
	}
	apiError.Message = string(body)
	return apiError
}
