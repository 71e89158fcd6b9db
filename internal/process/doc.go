// Package process terminates the browser helper processes left behind by a
// PDF render.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group.
var ErrInvalidPID = errors.New("invalid pid")
