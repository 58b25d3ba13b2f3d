package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	Reset()
	t.Cleanup(Reset)
	return home
}

func TestFilePath(t *testing.T) {
	home := setupHome(t)
	assert.Equal(t, filepath.Join(home, ".gameshelf", "config.yaml"), FilePath())
}

func TestLoadDefaults(t *testing.T) {
	setupHome(t)
	Load()

	assert.Equal(t, "", RegistryDir())
	assert.Equal(t, 48, IconSize())
	assert.Equal(t, 10*time.Minute, IconCacheTTL())
	assert.Nil(t, LaunchOpener())
	assert.Equal(t, 2*time.Second, LaunchGrace())
	assert.False(t, Debug())
	assert.Equal(t, "", LogFile())
}

func TestLoadReadsFile(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, ".gameshelf")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"registry_dir: /srv/games\nicon:\n  size: 64\nlaunch:\n  opener: gio open\n  grace: 500ms\n"), 0644))

	Load()

	assert.Equal(t, "/srv/games", RegistryDir())
	assert.Equal(t, 64, IconSize())
	assert.Equal(t, []string{"gio", "open"}, LaunchOpener())
	assert.Equal(t, 500*time.Millisecond, LaunchGrace())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv("GAMESHELF_ICON_SIZE", "96")
	t.Setenv("GAMESHELF_DEBUG", "1")

	Load()

	assert.Equal(t, 96, IconSize())
	assert.True(t, Debug())
}

func TestSetWritesOnlyFileSettings(t *testing.T) {
	setupHome(t)
	t.Setenv("GAMESHELF_DEBUG", "true")
	Load()

	require.NoError(t, Set("launch.grace", "5s"))
	require.NoError(t, Set("icon.size", "64"))

	data, err := os.ReadFile(FilePath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug")
	assert.Contains(t, string(data), "grace: 5s")

	result, err := Validate(data)
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Issues)

	Reset()
	Load()
	assert.Equal(t, 64, IconSize())
	assert.Equal(t, 5*time.Second, LaunchGrace())
}

func TestSetRejectsBadInput(t *testing.T) {
	setupHome(t)
	Load()

	assert.ErrorContains(t, Set("colour", "red"), "unknown config key")
	assert.ErrorContains(t, Set("icon.size", "big"), "integer")
	assert.ErrorContains(t, Set("log.debug", "maybe"), "true or false")
	assert.ErrorContains(t, Set("launch.grace", "soon"), "duration")
	assert.NoFileExists(t, FilePath())
}

func TestSetRejectsOutOfRangeIconSize(t *testing.T) {
	setupHome(t)
	Load()

	assert.ErrorContains(t, Set("icon.size", "1000000000"), "invalid value for icon.size")
	assert.ErrorContains(t, Set("icon.size", "8"), "invalid value for icon.size")
	assert.NoFileExists(t, FilePath())
	assert.Equal(t, 48, IconSize())

	require.NoError(t, Set("icon.size", "512"))
	assert.Equal(t, 512, IconSize())
}

func TestIconSizeClamped(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"1000000000", MaxIconSize},
		{"4", MinIconSize},
		{"0", 48},
		{"-3", 48},
		{"128", 128},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			setupHome(t)
			t.Setenv("GAMESHELF_ICON_SIZE", tt.env)
			Load()
			assert.Equal(t, tt.want, IconSize())
		})
	}
}

func TestGet(t *testing.T) {
	setupHome(t)
	Load()
	assert.Equal(t, "10m", Get("icon.cache_ttl"))
	assert.Equal(t, "48", Get("icon.size"))
}

func TestLookupKey(t *testing.T) {
	k, ok := LookupKey("launch.opener")
	require.True(t, ok)
	assert.Equal(t, KindString, k.Kind)

	_, ok = LookupKey("launch")
	assert.False(t, ok)
}
