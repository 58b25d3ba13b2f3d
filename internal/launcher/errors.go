package launcher

import (
	"errors"
	"fmt"
)

// ErrLaunchFailed matches every LaunchError via errors.Is.
var ErrLaunchFailed = errors.New("launch failed")

// LaunchError reports a launch that could not be spawned or exited with a
// non-zero code inside the grace period.
type LaunchError struct {
	Path     string
	ExitCode int // 0 when the process never ran
	Err      error
}

func (e *LaunchError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("launch %s: exited with code %d", e.Path, e.ExitCode)
	}
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrLaunchFailed and the underlying cause.
func (e *LaunchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLaunchFailed}
	}
	return []error{ErrLaunchFailed, e.Err}
}
