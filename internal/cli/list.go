package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gameshelf-labs/gameshelf/internal/registry"
	"github.com/gameshelf-labs/gameshelf/internal/userdata"
)

var (
	listJSON     bool
	listIconsDir string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered entries",
	Long:    `List the library in display order. The index is what 'gameshelf launch' takes.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listIconsDir, "icons", "", "Write each entry's icon as <index>-<name>.png into this directory")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a registered entry for display.
type listEntry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Stored string `json:"stored"`
	Icon   bool   `json:"icon"`
}

func runList(cmd *cobra.Command, args []string) error {
	svc, failures, err := startService()
	if err != nil {
		return err
	}
	for _, f := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] %v\n", f)
	}

	items := svc.Entries()
	if listIconsDir != "" {
		if err := writeIcons(listIconsDir, items); err != nil {
			return err
		}
	}

	entries := make([]listEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, listEntry{
			Index:  it.Index,
			Name:   it.Entry.Name,
			Kind:   it.Entry.Kind.String(),
			Target: it.Entry.TargetPath,
			Stored: it.Entry.StoredPath,
			Icon:   it.Icon != nil,
		})
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries registered yet. Add some with 'gameshelf add <file>'.")
		return nil
	}
	return printListTable(cmd, entries)
}

func writeIcons(dir string, items []registry.Item) error {
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating icon directory: %w", err)
	}
	for _, it := range items {
		if it.Icon == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%d-%s.png", it.Index, it.Entry.Name))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("writing icon %s: %w", path, err)
		}
		err = it.Icon.EncodePNG(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing icon %s: %w", path, err)
		}
	}
	return nil
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tKIND\tTARGET")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Index, e.Name, e.Kind, e.Target)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
