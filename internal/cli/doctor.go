package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gameshelf-labs/gameshelf/internal/config"
	"github.com/gameshelf-labs/gameshelf/internal/userdata"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the registry directory if it is missing")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the gameshelf installation",
	Long:  `Check the registry directory, the program used to open shortcuts, and the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false

		dir, err := registryDir()
		if err != nil {
			fmt.Fprintf(out, "Registry check:\n  [FAIL] %v\n", err)
			failed = true
		} else if err := userdata.CheckRegistryDir(out, dir, doctorFix); err != nil {
			failed = true
		}

		runOpenerCheck(out)

		if !runConfigCheck(out) {
			failed = true
		}

		if failed {
			return fmt.Errorf("doctor found problems")
		}
		return nil
	},
}

func runOpenerCheck(w io.Writer) {
	fmt.Fprintln(w, "Launch check:")
	l := newLauncher()
	path, err := l.OpenerAvailable()
	if err != nil {
		// Executables still launch directly without an opener.
		fmt.Fprintf(w, "  [WARN] opener not found: %v\n", err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] opener found at %s\n", path)
	fmt.Fprintf(w, "  [ OK ] early-exit window %s\n", l.Grace)
}

func runConfigCheck(w io.Writer) bool {
	fmt.Fprintln(w, "Config check:")
	path := config.FilePath()
	result, err := config.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	if !result.Valid {
		fmt.Fprintf(w, "  [FAIL] %s: %s\n", path, result.Summary())
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "         %s\n", issue)
		}
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return true
}
