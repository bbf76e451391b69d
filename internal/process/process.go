// Package process terminates the browser processes started for PDF output.
package process

import "errors"

// ErrInvalidPID rejects pids that would address the caller's own group.
var ErrInvalidPID = errors.New("invalid pid")
