package registry

import (
	"context"
	"errors"

	"github.com/gameshelf-labs/gameshelf/internal/icon"
	"github.com/gameshelf-labs/gameshelf/internal/store"
)

var (
	// ErrNotReady is returned by operations that need Startup to have run.
	ErrNotReady = errors.New("registry not started")
	// ErrIndexOutOfRange is returned when a display index has no entry.
	ErrIndexOutOfRange = errors.New("display index out of range")
)

// EntryStore persists entries. *store.Store satisfies it.
type EntryStore interface {
	Put(targetPath, name string) (store.Entry, bool, error)
	Rebuild() ([]store.Entry, []store.Failure, error)
}

// Launcher starts a target path. *launcher.Launcher satisfies it.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// Item is one displayed entry. Icon is nil when extraction failed.
type Item struct {
	Index int
	Entry store.Entry
	Icon  *icon.PixelBuffer
}

// RegisterResult is the outcome for one path of a registration batch.
// Exactly one of Err, Duplicate or a fresh Entry describes it; IconErr is
// informational and never fails the item.
type RegisterResult struct {
	Path      string
	Index     int
	Entry     store.Entry
	Duplicate bool
	Err       error
	IconErr   error
}

// NotificationKind identifies what changed.
type NotificationKind int

const (
	Registered NotificationKind = iota
	Duplicate
	RegisterFailed
	Launched
	LaunchFailed
	Rebuilt
)

func (k NotificationKind) String() string {
	switch k {
	case Registered:
		return "registered"
	case Duplicate:
		return "duplicate"
	case RegisterFailed:
		return "register-failed"
	case Launched:
		return "launched"
	case LaunchFailed:
		return "launch-failed"
	case Rebuilt:
		return "rebuilt"
	default:
		return "unknown"
	}
}

// Notification is delivered to subscribers after each state change.
// Index is -1 when no entry is involved.
type Notification struct {
	Kind  NotificationKind
	Index int
	Name  string
	Path  string
	Count int // entries after a rebuild
	Err   error
}

// Message renders n as a single human-readable line.
func (n Notification) Message() string {
	switch n.Kind {
	case Registered:
		return "added " + n.Name
	case Duplicate:
		return n.Name + " is already registered"
	case RegisterFailed:
		return "could not add " + n.Path + ": " + errString(n.Err)
	case Launched:
		return "launched " + n.Name
	case LaunchFailed:
		return "could not launch " + n.Name + ": " + errString(n.Err)
	case Rebuilt:
		return "registry loaded"
	default:
		return n.Kind.String()
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
