package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gameshelf-labs/gameshelf/internal/icon"
	"github.com/gameshelf-labs/gameshelf/internal/log"
	"github.com/gameshelf-labs/gameshelf/internal/store"
)

// DefaultIconSize is the edge length requested from the extractor.
const DefaultIconSize = 48

// Option configures a Service.
type Option func(*Service)

// WithIconSize sets the icon edge length in pixels.
func WithIconSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.iconSize = size
		}
	}
}

// Service is the registry state machine: Uninitialized until Startup
// succeeds, Ready afterwards.
type Service struct {
	store    EntryStore
	icons    icon.Extractor
	launcher Launcher
	iconSize int

	mu          sync.Mutex
	ready       bool
	items       []Item
	subscribers map[int]func(Notification)
	nextSub     int
}

// New creates an uninitialized Service.
func New(st EntryStore, icons icon.Extractor, l Launcher, opts ...Option) *Service {
	s := &Service{
		store:       st,
		icons:       icons,
		launcher:    l,
		iconSize:    DefaultIconSize,
		subscribers: make(map[int]func(Notification)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports whether Startup has completed.
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Startup rebuilds the entry list from the store and extracts every icon.
// Calling it again replaces the list with a fresh rebuild. Objects the store
// could not read are returned as failures; only an unusable store is an
// error, in which case the previous state is kept.
func (s *Service) Startup() ([]store.Failure, error) {
	entries, failures, err := s.store.Rebuild()
	if err != nil {
		log.ErrorErr(log.CatRegistry, "rebuild failed", err)
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for i, e := range entries {
		buf, iconErr := s.extract(e)
		if iconErr != nil {
			log.Warn(log.CatRegistry, "icon unavailable", "name", e.Name, "error", iconErr)
		}
		items = append(items, Item{Index: i, Entry: e, Icon: buf})
	}

	s.mu.Lock()
	s.items = items
	s.ready = true
	s.mu.Unlock()

	log.Info(log.CatRegistry, "ready", "entries", len(items), "failures", len(failures))
	s.notify(Notification{Kind: Rebuilt, Index: -1, Count: len(items)})
	return failures, nil
}

// Register handles one drop gesture. Each path is registered under its base
// name, in order, and a failure never stops the rest of the batch. New
// entries get the next display index; duplicates report the index of the
// entry already shown.
func (s *Service) Register(paths []string) []RegisterResult {
	results := make([]RegisterResult, 0, len(paths))
	ready := s.Ready()

	for _, path := range paths {
		if !ready {
			results = append(results, RegisterResult{Path: path, Index: -1, Err: ErrNotReady})
			continue
		}
		res := s.registerOne(path)
		results = append(results, res)

		switch {
		case res.Err != nil:
			s.notify(Notification{Kind: RegisterFailed, Index: -1, Path: path, Err: res.Err})
		case res.Duplicate:
			s.notify(Notification{Kind: Duplicate, Index: res.Index, Name: res.Entry.Name, Path: path})
		default:
			s.notify(Notification{Kind: Registered, Index: res.Index, Name: res.Entry.Name, Path: path})
		}
	}
	return results
}

func (s *Service) registerOne(path string) RegisterResult {
	res := RegisterResult{Path: path, Index: -1}

	entry, created, err := s.store.Put(path, filepath.Base(path))
	if err != nil {
		log.ErrorErr(log.CatRegistry, "register failed", err, "path", path)
		res.Err = err
		return res
	}
	res.Entry = entry

	if !created {
		res.Duplicate = true
		if idx, ok := s.indexOf(entry); ok {
			res.Index = idx
			return res
		}
		// Stored by someone else since the last rebuild; show it once.
		log.Debug(log.CatRegistry, "duplicate not yet displayed", "name", entry.Name)
	}

	buf, iconErr := s.extract(entry)
	if iconErr != nil {
		log.Warn(log.CatRegistry, "icon unavailable", "name", entry.Name, "error", iconErr)
		res.IconErr = iconErr
	}
	res.Index = s.appendItem(entry, buf)
	return res
}

func (s *Service) extract(e store.Entry) (*icon.PixelBuffer, error) {
	if s.icons == nil {
		return nil, icon.ErrIconUnavailable
	}
	return s.icons.Extract(e.IconSource, s.iconSize)
}

func (s *Service) indexOf(e store.Entry) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Entry.StoredPath == e.StoredPath {
			return it.Index, true
		}
	}
	return -1, false
}

func (s *Service) appendItem(e store.Entry, buf *icon.PixelBuffer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.items)
	s.items = append(s.items, Item{Index: idx, Entry: e, Icon: buf})
	return idx
}

// Launch starts the entry at display index. The original target is
// launched, not the stored object, so renaming the stored copy never breaks
// launching. The list is unchanged whatever the outcome.
func (s *Service) Launch(ctx context.Context, index int) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if index < 0 || index >= len(s.items) {
		n := len(s.items)
		s.mu.Unlock()
		return fmt.Errorf("%w: %d (have %d entries)", ErrIndexOutOfRange, index, n)
	}
	entry := s.items[index].Entry
	s.mu.Unlock()

	if err := s.launcher.Launch(ctx, entry.TargetPath); err != nil {
		s.notify(Notification{Kind: LaunchFailed, Index: index, Name: entry.Name, Path: entry.TargetPath, Err: err})
		return err
	}
	s.notify(Notification{Kind: Launched, Index: index, Name: entry.Name, Path: entry.TargetPath})
	return nil
}

// Entries returns a snapshot of the list in display order.
func (s *Service) Entries() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Lookup finds an entry by stored name, also accepting the name of a web
// shortcut without its .url extension.
func (s *Service) Lookup(name string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, candidate := range []string{name, name + store.UrlExt} {
		for _, it := range s.items {
			if it.Entry.Name == candidate {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Subscribe registers fn for notifications and returns a function that
// removes it. fn runs synchronously on the goroutine that made the change.
func (s *Service) Subscribe(fn func(Notification)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) notify(n Notification) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Notification), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}
