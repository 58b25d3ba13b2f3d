package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/gameshelf-labs/gameshelf/internal/branding"
	"github.com/gameshelf-labs/gameshelf/internal/log"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Dir returns the path to the gameshelf home directory (~/.gameshelf/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.gameshelf/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from defaults, the config file and the environment.
// Nested keys map to env vars with dots replaced, e.g. GAMESHELF_ICON_SIZE.
func Load() {
	for _, k := range Keys {
		viper.SetDefault(k.Name, k.Default)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("log.debug", branding.EnvVar("LOG_DEBUG"), branding.EnvVar("DEBUG"))

	// Ignore error if config file doesn't exist yet.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Debug(log.CatConfig, "config not read", "path", FilePath(), "error", err)
	}
}

// Reset clears all loaded values.
func Reset() {
	viper.Reset()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates value for key and writes it to the config file. Only the
// file's own settings are rewritten; defaults and environment overrides
// never leak into it.
func Set(key, value string) error {
	k, ok := LookupKey(key)
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	v, err := k.Parse(value)
	if err != nil {
		return err
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	doc := map[string]any{}
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config file %s: %w", configFile, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	}
	setPath(doc, strings.Split(key, "."), v)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := checkKey(out, key); err != nil {
		return err
	}
	if err := os.WriteFile(configFile, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, v)
	log.Info(log.CatConfig, "config updated", "key", key, "value", value)
	return nil
}

// checkKey validates the candidate document and rejects it when the schema
// flags the key being set. Issues elsewhere in the file are left to doctor.
func checkKey(doc []byte, key string) error {
	result, err := Validate(doc)
	if err != nil {
		return err
	}
	path := "/" + strings.ReplaceAll(key, ".", "/")
	var msgs []string
	for _, issue := range result.Issues {
		if issue.Path == path {
			msgs = append(msgs, issue.Message)
		}
	}
	if len(msgs) > 0 {
		return fmt.Errorf("invalid value for %s: %s", key, strings.Join(msgs, "; "))
	}
	return nil
}

func setPath(doc map[string]any, path []string, v any) {
	if len(path) == 1 {
		doc[path[0]] = v
		return
	}
	child, ok := doc[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		doc[path[0]] = child
	}
	setPath(child, path[1:], v)
}

// RegistryDir returns the configured registry directory, or "" for the default.
func RegistryDir() string { return viper.GetString("registry_dir") }

// Icon edge bounds. Values outside them, from the environment or a
// hand-edited file, are clamped.
const (
	MinIconSize = 16
	MaxIconSize = 512
)

// IconSize returns the icon edge length, falling back to 48.
func IconSize() int {
	n := viper.GetInt("icon.size")
	switch {
	case n <= 0:
		return 48
	case n < MinIconSize:
		return MinIconSize
	case n > MaxIconSize:
		return MaxIconSize
	}
	return n
}

// IconCacheTTL returns how long icons stay cached, falling back to 10m.
func IconCacheTTL() time.Duration {
	return durationOr("icon.cache_ttl", 10*time.Minute)
}

// LaunchOpener returns the opener override split into argv, or nil.
func LaunchOpener() []string {
	return strings.Fields(viper.GetString("launch.opener"))
}

// LaunchGrace returns the early-exit window, falling back to 2s.
func LaunchGrace() time.Duration {
	return durationOr("launch.grace", 2*time.Second)
}

// Debug reports whether the debug log is enabled.
func Debug() bool { return viper.GetBool("log.debug") }

// LogFile returns the configured log path, or "" for the default.
func LogFile() string { return viper.GetString("log.file") }

func durationOr(key string, fallback time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
