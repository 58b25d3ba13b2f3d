package icon

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/gameshelf-labs/gameshelf/internal/log"
)

// iconThemeSizes are the hicolor size directories searched, largest first.
var iconThemeSizes = []string{"512x512", "256x256", "128x128", "96x96", "64x64", "48x48", "32x32"}

// iconFileExts are the extensions tried for a bare icon name. SVG is not
// listed because it cannot be rasterized here.
var iconFileExts = []string{".png", ".jpg", ".jpeg"}

func defaultIconDirs() []string {
	var dirs []string
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "icons"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "icons"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		dirs = append(dirs, filepath.Join(d, "icons"))
	}
	return append(dirs,
		"/var/lib/flatpak/exports/share/icons",
		"/usr/share/pixmaps",
	)
}

// desktopIcon resolves the Icon= key of a freedesktop .desktop file.
func (s *System) desktopIcon(path string) (image.Image, bool) {
	name, err := readINIKey(path, "Desktop Entry", "Icon")
	if err != nil || name == "" {
		return nil, false
	}
	return s.resolveIcon(name)
}

// urlIcon resolves the IconFile= key of a web shortcut.
func (s *System) urlIcon(path string) (image.Image, bool) {
	ref, err := readINIKey(path, "InternetShortcut", "IconFile")
	if err != nil || ref == "" {
		return nil, false
	}
	if strings.Contains(ref, "://") {
		// Remote favicons would need network access.
		return nil, false
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(filepath.Dir(path), ref)
	}
	img, err := decodeImageRef(ref)
	if err != nil {
		log.Debug(log.CatIcon, "IconFile not decodable", "path", path, "icon", ref, "error", err)
		return nil, false
	}
	return img, true
}

// resolveIcon turns an Icon= value into an image: absolute paths are decoded
// directly, bare names are looked up through the theme directories.
func (s *System) resolveIcon(name string) (image.Image, bool) {
	if filepath.IsAbs(name) {
		img, err := decodeImageRef(name)
		return img, err == nil
	}

	for _, candidate := range s.iconCandidates(name) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		img, err := decodeImageRef(candidate)
		if err == nil {
			return img, true
		}
	}
	return nil, false
}

func (s *System) iconCandidates(name string) []string {
	var out []string
	for _, dir := range s.IconDirs {
		for _, size := range iconThemeSizes {
			for _, ext := range iconFileExts {
				out = append(out, filepath.Join(dir, "hicolor", size, "apps", name+ext))
			}
		}
		for _, ext := range iconFileExts {
			out = append(out, filepath.Join(dir, name+ext))
		}
	}
	return out
}

// readINIKey returns the value of key in [section] of an INI-style file.
// Both .desktop and .url files use this layout. Section and key names match
// case-insensitively; a missing section or key yields "".
func readINIKey(path, section, key string) (string, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return "", err
	}
	sec, err := cfg.GetSection(section)
	if err != nil {
		return "", nil
	}
	return sec.Key(key).String(), nil
}
