package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gameshelf-labs/gameshelf/internal/registry"
)

var launchCmd = &cobra.Command{
	Use:     "launch <index|name>",
	Aliases: []string{"run", "open"},
	Short:   "Launch a registered entry",
	Long: `Launch an entry by its display index (see 'gameshelf list') or by name.
The original file is started, not the copy in the registry directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	svc, _, err := startService()
	if err != nil {
		return err
	}

	index, err := resolveIndex(svc, args[0])
	if err != nil {
		return err
	}

	name := svc.Entries()[index].Entry.Name
	if err := svc.Launch(cmd.Context(), index); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[ OK ] Launched %s\n", name)
	return nil
}

// resolveIndex accepts a display index or an entry name. A name wins when an
// entry is literally called e.g. "2".
func resolveIndex(svc *registry.Service, arg string) (int, error) {
	if it, ok := svc.Lookup(arg); ok {
		return it.Index, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("no entry named %q", arg)
	}
	if n < 0 || n >= len(svc.Entries()) {
		return 0, fmt.Errorf("%w: %d", registry.ErrIndexOutOfRange, n)
	}
	return n, nil
}
