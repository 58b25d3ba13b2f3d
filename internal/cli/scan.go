package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:     "scan",
	Aliases: []string{"rescan"},
	Short:   "Rebuild the library from the registry directory",
	Long: `Read the registry directory again and report every entry found, plus any
object that could not be read. Files copied into the directory by hand show
up here.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := registryDir()
		if err != nil {
			return err
		}
		svc, failures, err := startService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scanned %s\n", dir)
		for _, it := range svc.Entries() {
			fmt.Fprintf(out, "  [ OK ] #%d %s (%s)\n", it.Index, it.Entry.Name, it.Entry.Kind)
		}
		for _, f := range failures {
			fmt.Fprintf(out, "  [WARN] %v\n", f)
		}
		fmt.Fprintln(out, printer.Sprintf("%d entries, %d unreadable", len(svc.Entries()), len(failures)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
