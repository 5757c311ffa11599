// Package process terminates the headless browser started for PDF output.
package process

import "errors"

// ErrInvalidPID indicates a pid that cannot name a process group.
var ErrInvalidPID = errors.New("invalid pid")
