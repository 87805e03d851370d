// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that choose their own exit code.
type ExitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits. The exit code is the
// one chosen by an ExitCoder in err's chain, or 1.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes "error: err" to writer and returns the exit code Fatal
// would use. An ExitCoder with a zero code is a quiet exit: nothing is
// written.
func Report(writer io.Writer, err error) int {
	code := 1
	var coder ExitCoder
	if errors.As(err, &coder) {
		code = coder.ExitCode()
	}
	if code != 0 {
		fmt.Fprintf(writer, "error: %v\n", err)
	}
	return code
}
