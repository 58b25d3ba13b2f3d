package store

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned when the registry directory cannot be
// resolved or created. It is fatal to the triggering operation.
var ErrStoreUnavailable = errors.New("registry store unavailable")

// ErrInvalidName is returned by Put for names that cannot be a single
// directory entry.
var ErrInvalidName = errors.New("invalid entry name")

// LinkError records a failed hard link. Put recovers from it with a copy,
// so callers only see it in logs.
type LinkError struct {
	Target string
	Stored string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("hard link %s -> %s: %v", e.Stored, e.Target, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// CopyError records a failed byte copy, either the primary strategy for web
// shortcuts or the fallback after a LinkError.
type CopyError struct {
	Target string
	Stored string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s to %s: %v", e.Target, e.Stored, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// Failure is a per-object error collected during Rebuild.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }
