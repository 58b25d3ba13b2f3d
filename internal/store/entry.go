package store

import (
	"path/filepath"
	"strings"
)

// Kind classifies a registered file by its extension.
type Kind int

const (
	// Executable is any file that is not a shortcut: binaries, scripts, images.
	Executable Kind = iota
	// ShortcutLink is an OS shortcut (.lnk on Windows, .desktop on freedesktop).
	ShortcutLink
	// UrlLink is a web shortcut (.url).
	UrlLink
)

// UrlExt is the extension of web shortcut files.
const UrlExt = ".url"

var shortcutExts = map[string]bool{
	".lnk":     true,
	".desktop": true,
}

// ClassifyKind derives the Kind from a path's extension, case-insensitively.
func ClassifyKind(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == UrlExt:
		return UrlLink
	case shortcutExts[ext]:
		return ShortcutLink
	default:
		return Executable
	}
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Executable:
		return "executable"
	case ShortcutLink:
		return "shortcut"
	case UrlLink:
		return "url"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds render by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one registered application reference.
type Entry struct {
	// Name is the stored object's base name and the entry's unique key.
	Name string `json:"name"`
	// TargetPath is the file launched for this entry. For an entry created by
	// Put it is the dropped file; after a rebuild it is the symlink target, or
	// the stored object itself for hard links and copies.
	TargetPath string `json:"target_path"`
	// StoredPath is the object inside the registry directory.
	StoredPath string `json:"stored_path"`
	// IconSource is the file icons are extracted from.
	IconSource string `json:"icon_source"`
	Kind       Kind   `json:"kind"`
}

// storedName normalizes a display name into the on-disk object name.
// Web shortcuts always carry the .url extension so they remain openable.
func storedName(name string, kind Kind) string {
	if kind == UrlLink && !strings.EqualFold(filepath.Ext(name), UrlExt) {
		return name + UrlExt
	}
	return name
}

// collisionNames lists every object name that counts as "already registered"
// for name: the name itself, its .url sibling, and for a .url name the bare
// base name. The last case treats a cross-kind collision as a duplicate
// rather than letting a web shortcut shadow a linked binary.
func collisionNames(name string) []string {
	names := []string{name}
	if strings.EqualFold(filepath.Ext(name), UrlExt) {
		if base := strings.TrimSuffix(name, filepath.Ext(name)); base != "" {
			names = append(names, base)
		}
	} else {
		names = append(names, name+UrlExt)
	}
	return names
}
