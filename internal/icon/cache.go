package icon

import (
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gameshelf-labs/gameshelf/internal/log"
)

// DefaultCacheTTL is how long an extracted icon stays in memory.
const DefaultCacheTTL = 10 * time.Minute

// Cached memoizes another Extractor in memory. Keys include the file's size
// and modification time, so a replaced binary is extracted afresh.
// Nothing is written to disk.
type Cached struct {
	inner Extractor
	cache *gocache.Cache
}

// NewCached wraps inner with an in-memory cache whose entries expire after ttl.
func NewCached(inner Extractor, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Extract implements Extractor. Each call returns a buffer the caller owns.
func (c *Cached) Extract(path string, maxSize int) (*PixelBuffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return c.inner.Extract(path, maxSize)
	}

	key := fmt.Sprintf("%s|%d|%d|%d", path, maxSize, info.Size(), info.ModTime().UnixNano())
	if v, found := c.cache.Get(key); found {
		if pb, ok := v.(*PixelBuffer); ok {
			log.Debug(log.CatIcon, "cache hit", "path", path)
			return pb.Clone(), nil
		}
	}

	pb, err := c.inner.Extract(path, maxSize)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, pb)
	return pb.Clone(), nil
}

// Len returns the number of cached icons.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached icon.
func (c *Cached) Flush() {
	c.cache.Flush()
}
