package library

import (
	"context"
	"path/filepath"

	"github.com/kasuboski/episodez/pkg/cache"
	"github.com/kasuboski/episodez/pkg/io"
	"github.com/kasuboski/episodez/pkg/logger"
	"go.uber.org/zap"
)

// DirCache memoizes directory listings by absolute path for the lifetime of a scan.
// Missing or unreadable directories are cached as empty listings.
type DirCache struct {
	fio      io.FileIO
	listings *cache.Cache[string, []FileEntry]
}

func NewDirCache(fio io.FileIO) *DirCache {
	return &DirCache{
		fio:      fio,
		listings: cache.New[string, []FileEntry](),
	}
}

// Get returns the entries directly inside dir, reading the directory on first use
func (c *DirCache) Get(ctx context.Context, dir string) []FileEntry {
	key := cacheKey(dir)
	return c.listings.GetOrSet(key, func() []FileEntry {
		return c.list(ctx, key)
	})
}

// Invalidate drops the cached listing for dir so the next Get reads it again
func (c *DirCache) Invalidate(dir string) {
	c.listings.Delete(cacheKey(dir))
}

func (c *DirCache) Clear() {
	c.listings.Clear()
}

// Len is the number of cached directories
func (c *DirCache) Len() int {
	return c.listings.Size()
}

func (c *DirCache) list(ctx context.Context, dir string) []FileEntry {
	log := logger.FromCtx(ctx)

	entries, err := c.fio.ReadDir(dir)
	if err != nil {
		log.Debug("failed to read directory", zap.String("dir", dir), zap.Error(err))
		return []FileEntry{}
	}

	files := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}

		files = append(files, NewFileEntry(filepath.Join(dir, e.Name()), size, e.IsDir()))
	}

	return files
}

func cacheKey(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}

	return abs
}
