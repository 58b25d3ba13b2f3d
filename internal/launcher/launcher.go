package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/gameshelf-labs/gameshelf/internal/log"
)

// DefaultGrace is how long Launch waits for an early exit before treating
// the process as successfully started.
const DefaultGrace = 2 * time.Second

// Launcher starts entry targets.
type Launcher struct {
	// Opener overrides the platform opener for non-executable targets.
	Opener []string
	// Grace bounds the wait for the immediate launch outcome.
	Grace time.Duration
}

// New creates a Launcher. An empty opener selects the platform default and
// a non-positive grace selects DefaultGrace.
func New(opener []string, grace time.Duration) *Launcher {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Launcher{Opener: opener, Grace: grace}
}

// Launch starts path and waits for its immediate outcome: an exit inside the
// grace period must be clean, and a process still running afterwards counts
// as launched and is left alone. stdout and stderr are discarded. ctx only
// bounds the wait; it never kills the spawned process.
func (l *Launcher) Launch(ctx context.Context, path string) error {
	id := uuid.NewString()

	info, err := os.Stat(path)
	if err != nil {
		log.ErrorErr(log.CatLaunch, "target missing", err, "id", id, "path", path)
		return &LaunchError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &LaunchError{Path: path, Err: errors.New("target is a directory")}
	}

	strategy := DispatchStrategy(path, info, l.Opener)
	cmd := strategy.Command(path)

	log.Info(log.CatLaunch, "launching", "id", id, "path", path, "via", strategy.Name())

	if err := cmd.Start(); err != nil {
		log.ErrorErr(log.CatLaunch, "spawn failed", err, "id", id, "path", path)
		return &LaunchError{Path: path, Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	grace := l.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case err := <-done:
		if err == nil {
			log.Info(log.CatLaunch, "launched", "id", id, "exit", 0)
			return nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn(log.CatLaunch, "exited early", "id", id, "path", path, "exit", exitErr.ExitCode())
			return &LaunchError{Path: path, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &LaunchError{Path: path, Err: err}
	case <-timer.C:
		log.Info(log.CatLaunch, "launched, detaching", "id", id, "pid", cmd.Process.Pid)
		return nil
	case <-ctx.Done():
		return &LaunchError{Path: path, Err: fmt.Errorf("waiting for launch outcome: %w", ctx.Err())}
	}
}

// OpenerAvailable reports the resolved opener binary, for diagnostics.
func (l *Launcher) OpenerAvailable() (string, error) {
	opener := l.Opener
	if len(opener) == 0 {
		opener = DefaultOpener()
	}
	return exec.LookPath(opener[0])
}
