package launcher

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gameshelf-labs/gameshelf/internal/platform"
	"github.com/gameshelf-labs/gameshelf/internal/store"
)

// Strategy builds the command that starts a path.
type Strategy interface {
	Name() string
	Command(path string) *exec.Cmd
}

// directStrategy runs an executable in its own directory, which is where
// most games expect to find their data.
type directStrategy struct{}

func (directStrategy) Name() string { return "direct" }

func (directStrategy) Command(path string) *exec.Cmd {
	cmd := exec.Command(path)
	cmd.Dir = filepath.Dir(path)
	return cmd
}

// openerStrategy hands the path to an opener program as its last argument.
type openerStrategy struct {
	argv []string
}

func (o openerStrategy) Name() string { return o.argv[0] }

func (o openerStrategy) Command(path string) *exec.Cmd {
	args := append(append([]string{}, o.argv[1:]...), path)
	return exec.Command(o.argv[0], args...)
}

// DefaultOpener returns the platform's "open" command.
func DefaultOpener() []string {
	switch runtime.GOOS {
	case "windows":
		// The empty argument is start's window title.
		return []string{"cmd", "/c", "start", ""}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// DispatchStrategy picks how to start path. Executables that are not
// shortcuts run directly; freedesktop entries use `gio launch` when it is
// installed, since xdg-open would open them in an editor; everything else
// goes to the opener.
func DispatchStrategy(path string, info os.FileInfo, opener []string) Strategy {
	kind := store.ClassifyKind(path)

	if kind == store.Executable && platform.IsExecutable(path, info) {
		return directStrategy{}
	}

	if len(opener) == 0 {
		if kind == store.ShortcutLink && strings.EqualFold(filepath.Ext(path), ".desktop") {
			if gio, err := exec.LookPath("gio"); err == nil {
				return openerStrategy{argv: []string{gio, "launch"}}
			}
		}
		opener = DefaultOpener()
	}
	return openerStrategy{argv: opener}
}
