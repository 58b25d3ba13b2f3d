package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var addCmd = &cobra.Command{
	Use:     "add <path>...",
	Aliases: []string{"register", "drop"},
	Short:   "Add files to the library",
	Long: `Add one or more files to the library, as if they were dropped on the window
together. Executables and shortcuts are hard linked (or copied) into the
registry directory; web shortcuts are always copied. A file whose name is
already registered is left alone. One failing file never stops the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, _, err := startService()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var added, dup, failed int
	for _, r := range svc.Register(args) {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", r.Path, r.Err)
		case r.Duplicate:
			dup++
			fmt.Fprintf(out, "  [SKIP] #%d %s is already registered\n", r.Index, r.Entry.Name)
		default:
			added++
			note := ""
			if r.IconErr != nil {
				note = " (no icon)"
			}
			fmt.Fprintf(out, "  [ OK ] #%d %s%s\n", r.Index, r.Entry.Name, note)
		}
	}

	fmt.Fprintln(out, printer.Sprintf("Added %d, already present %d, failed %d.", added, dup, failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be added", failed, len(args))
	}
	return nil
}
