package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gameshelf-labs/gameshelf/internal/log"
	"github.com/gameshelf-labs/gameshelf/internal/platform"
	"github.com/gameshelf-labs/gameshelf/internal/userdata"
)

// ignoredNames are OS litter files that never count as entries.
var ignoredNames = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

// Resolver returns the registry directory. It is called on every operation
// so a missing config root surfaces as ErrStoreUnavailable from Put/Rebuild.
type Resolver func() (string, error)

// Store is the directory-backed entry table. All operations are serialized:
// the dedup check and the link/copy that follows must not interleave.
type Store struct {
	mu      sync.Mutex
	resolve Resolver

	// link is the hard-link primitive; replaced in tests to force the copy fallback.
	link func(target, stored string) error
}

// New creates a Store whose directory is resolved lazily by resolve.
func New(resolve Resolver) *Store {
	return &Store{resolve: resolve, link: platform.HardLink}
}

// NewAt creates a Store rooted at a fixed directory.
func NewAt(dir string) *Store {
	return New(func() (string, error) { return dir, nil })
}

// Dir resolves the registry directory without creating it.
func (s *Store) Dir() (string, error) {
	dir, err := s.resolve()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return dir, nil
}

// ensureDir resolves and creates the registry directory. MkdirAll makes this
// idempotent.
func (s *Store) ensureDir() (string, error) {
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrStoreUnavailable, dir, err)
	}
	return dir, nil
}

// Put registers targetPath under name. If an object already occupies name
// (or its .url sibling) the existing entry is returned unchanged with
// created=false. Web shortcuts are copied; everything else is hard linked,
// falling back to a copy when the link cannot be made.
func (s *Store) Put(targetPath, name string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateName(name); err != nil {
		return Entry{}, false, err
	}

	dir, err := s.ensureDir()
	if err != nil {
		return Entry{}, false, err
	}

	kind := ClassifyKind(targetPath)
	stored := storedName(name, kind)

	existing, found, err := lookup(dir, stored)
	if err != nil {
		return Entry{}, false, err
	}
	if found {
		log.Debug(log.CatStore, "already registered", "name", stored, "stored", existing.StoredPath)
		return existing, false, nil
	}

	target, err := filepath.Abs(targetPath)
	if err != nil {
		return Entry{}, false, &CopyError{Target: targetPath, Err: err}
	}
	storedPath := filepath.Join(dir, stored)

	// Link the file a symlink points at, not the symlink itself: a hard link
	// to a relative symlink dangles once it lives in the store.
	if target, err = filepath.EvalSymlinks(target); err != nil {
		return Entry{}, false, &CopyError{Target: targetPath, Stored: storedPath, Err: err}
	}

	info, err := os.Stat(target)
	if err != nil {
		return Entry{}, false, &CopyError{Target: target, Stored: storedPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return Entry{}, false, &CopyError{Target: target, Stored: storedPath, Err: errors.New("not a regular file")}
	}

	if err := s.materialize(kind, target, storedPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			// Another process created the object between lookup and write.
			if existing, found, lookupErr := lookup(dir, stored); lookupErr == nil && found {
				return existing, false, nil
			}
		}
		return Entry{}, false, err
	}

	log.Info(log.CatStore, "registered", "name", stored, "kind", kind, "target", target)
	return Entry{
		Name:       stored,
		TargetPath: target,
		StoredPath: storedPath,
		IconSource: storedPath,
		Kind:       kind,
	}, true, nil
}

// materialize writes the stored object for target.
func (s *Store) materialize(kind Kind, target, storedPath string) error {
	if kind != UrlLink {
		err := s.link(target, storedPath)
		if err == nil {
			return nil
		}
		if errors.Is(err, os.ErrExist) {
			return err
		}
		linkErr := &LinkError{Target: target, Stored: storedPath, Err: err}
		log.Warn(log.CatStore, "hard link failed, copying instead", "error", linkErr)
	}

	if err := platform.CopyFile(target, storedPath); err != nil {
		return &CopyError{Target: target, Stored: storedPath, Err: err}
	}
	return nil
}

// Rebuild enumerates the registry directory and returns one Entry per stored
// object in directory order. Objects that cannot be read are reported as
// Failures without stopping the scan. A missing directory is an empty store.
func (s *Store) Rebuild() ([]Entry, []Failure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.Dir()
	if err != nil {
		return nil, nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, dir, err)
	}

	var (
		entries  []Entry
		failures []Failure
	)
	for _, de := range dirEntries {
		name := de.Name()
		if ignoredNames[name] {
			continue
		}
		if de.IsDir() {
			log.Debug(log.CatStore, "skipping directory", "name", name)
			continue
		}

		path := filepath.Join(dir, name)
		info, err := de.Info()
		if err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
			continue
		}
		entry, err := entryFromObject(dir, name, info)
		if err != nil {
			log.ErrorErr(log.CatStore, "unreadable stored object", err, "path", path)
			failures = append(failures, Failure{Path: path, Err: err})
			continue
		}
		entries = append(entries, entry)
	}

	log.Info(log.CatStore, "rebuilt", "dir", dir, "entries", len(entries), "failures", len(failures))
	return entries, failures, nil
}

// lookup returns the entry occupying any collision name of stored.
func lookup(dir, stored string) (Entry, bool, error) {
	for _, name := range collisionNames(stored) {
		info, err := os.Lstat(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Entry{}, false, fmt.Errorf("checking %s: %w", name, err)
		}
		entry, err := entryFromObject(dir, name, info)
		if err != nil {
			return Entry{}, false, err
		}
		return entry, true, nil
	}
	return Entry{}, false, nil
}

// entryFromObject builds the Entry for one stored object. A symlink is
// resolved one level: its target is the icon source and launch target while
// the link keeps the display name.
func entryFromObject(dir, name string, info os.FileInfo) (Entry, error) {
	path := filepath.Join(dir, name)

	if platform.IsSymlink(info) {
		target, err := platform.ReadSymlinkTarget(path)
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Name:       name,
			TargetPath: target,
			StoredPath: path,
			IconSource: target,
			Kind:       ClassifyKind(target),
		}, nil
	}

	if !info.Mode().IsRegular() {
		return Entry{}, fmt.Errorf("%s is not a regular file or symlink", path)
	}
	return Entry{
		Name:       name,
		TargetPath: path,
		StoredPath: path,
		IconSource: path,
		Kind:       ClassifyKind(name),
	}, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if ignoredNames[name] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}
