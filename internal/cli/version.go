package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/gameshelf-labs/gameshelf/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo describes the running build. Channel is "release",
// "prerelease" or "dev" for builds without a semver tag.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Channel string `json:"channel"`
}

func buildInfo() versionInfo {
	info := versionInfo{
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
		Channel: "dev",
	}
	v, err := semver.NewVersion(buildVersion)
	if err != nil {
		return info
	}
	info.Version = v.String()
	if v.Prerelease() != "" {
		info.Channel = "prerelease"
	} else {
		info.Channel = "release"
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := buildInfo()

		if versionShort {
			fmt.Fprintln(out, info.Version)
			return nil
		}

		if versionJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (%s, commit: %s, built: %s)\n",
			branding.CLIName(), info.Version, info.Channel, info.Commit, info.Date)
		return nil
	},
}
