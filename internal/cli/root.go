package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gameshelf-labs/gameshelf/internal/branding"
	"github.com/gameshelf-labs/gameshelf/internal/config"
	"github.com/gameshelf-labs/gameshelf/internal/icon"
	"github.com/gameshelf-labs/gameshelf/internal/launcher"
	"github.com/gameshelf-labs/gameshelf/internal/log"
	"github.com/gameshelf-labs/gameshelf/internal/registry"
	"github.com/gameshelf-labs/gameshelf/internal/store"
	"github.com/gameshelf-labs/gameshelf/internal/userdata"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	flagDebug       bool
	flagRegistryDir string

	closeLog func()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a library of games and applications. Register files once,
then list and launch them from one place. The library is a plain directory
under your user config folder; nothing else is persisted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		setupLogging(cmd)
		log.Debug(log.CatCLI, "command", "name", cmd.CommandPath(), "args", args)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
			closeLog = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log (~/.gameshelf/gameshelf.log)")
	rootCmd.PersistentFlags().StringVar(&flagRegistryDir, "registry-dir", "", "Use this registry directory instead of the configured one")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func setupLogging(cmd *cobra.Command) {
	if !flagDebug && !config.Debug() {
		return
	}
	path := config.LogFile()
	if path == "" {
		p, err := userdata.GetLogPath()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] Debug log disabled: %v\n", err)
			return
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] Debug log disabled: %v\n", err)
		return
	}
	closeFn, err := log.Init(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] Debug log disabled: %v\n", err)
		return
	}
	closeLog = closeFn
}

// registryDir resolves the registry directory: --registry-dir, then
// GAMESHELF_REGISTRY, then the registry_dir setting, then the default.
func registryDir() (string, error) {
	if flagRegistryDir != "" {
		return filepath.Clean(flagRegistryDir), nil
	}
	return userdata.GetRegistryDir(config.RegistryDir())
}

func newLauncher() *launcher.Launcher {
	return launcher.New(config.LaunchOpener(), config.LaunchGrace())
}

// startService wires the registry service from configuration and runs its
// startup rebuild.
func startService() (*registry.Service, []store.Failure, error) {
	st := store.New(registryDir)
	icons := icon.NewCached(icon.NewSystem(), config.IconCacheTTL())
	svc := registry.New(st, icons, newLauncher(), registry.WithIconSize(config.IconSize()))

	failures, err := svc.Startup()
	if err != nil {
		return nil, nil, err
	}
	return svc, failures, nil
}
