// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	// ErrorNetwork covers an unreachable backend, a non-2xx
	// response, a backend-reported failure, and a fetch timeout.
	ErrorNetwork ErrorKind = iota + 1

	// ErrorDecode means the backend answered but the page payload
	// could not be decoded.
	ErrorDecode

	// ErrorStale marks a completion for a superseded query. It never
	// reaches State.LastError; it exists for diagnostics.
	ErrorStale
)

// String returns the kind's lowercase name.
func (kind ErrorKind) String() string {
	switch kind {
	case ErrorNetwork:
		return "network"
	case ErrorDecode:
		return "decode"
	case ErrorStale:
		return "stale"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// FetchError is a classified fetch failure.
type FetchError struct {
	Kind ErrorKind
	Err  error
}

func (err *FetchError) Error() string {
	if err.Err == nil {
		return err.Kind.String() + " error"
	}
	return err.Kind.String() + " error: " + err.Err.Error()
}

func (err *FetchError) Unwrap() error { return err.Err }

// NetworkError wraps err as an ErrorNetwork failure.
func NetworkError(err error) error {
	return &FetchError{Kind: ErrorNetwork, Err: err}
}

// DecodeError wraps err as an ErrorDecode failure.
func DecodeError(err error) error {
	return &FetchError{Kind: ErrorDecode, Err: err}
}

// ClassifyError converts any gateway error into a *FetchError. Errors
// that already carry a classification keep it; everything else is a
// network failure. Returns nil for a nil error.
func ClassifyError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fetchError *FetchError
	if errors.As(err, &fetchError) {
		return fetchError
	}
	return &FetchError{Kind: ErrorNetwork, Err: err}
}
