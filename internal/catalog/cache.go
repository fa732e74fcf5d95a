// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"errors"
	"time"

	"github.com/tomtom215/moview/internal/cache"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// gcDiscardRatio is passed to badger value log GC.
const gcDiscardRatio = 0.5

// Cache holds resolved metadata in memory and, when a path is configured,
// in badger. A nil *Cache is valid and caches nothing.
type Cache struct {
	mem  *cache.LRU[models.MovieMetadata]
	disk *cache.DiskStore
	ttl  time.Duration
}

// NewCache builds the cache tiers from configuration. It returns nil when
// caching is disabled.
func NewCache(cfg *config.CatalogConfig) (*Cache, error) {
	if cfg.CacheSize <= 0 {
		return nil, nil
	}
	c := &Cache{
		mem: cache.NewLRU[models.MovieMetadata](cfg.CacheSize, cfg.CacheTTL),
		ttl: cfg.CacheTTL,
	}
	if cfg.CachePath != "" {
		disk, err := cache.OpenDiskStore(cfg.CachePath, "catalog:")
		if err != nil {
			return nil, err
		}
		c.disk = disk
	}
	return c, nil
}

// Get looks in memory, then on disk. Disk hits are promoted to memory.
func (c *Cache) Get(key string) (*models.MovieMetadata, bool) {
	if c == nil {
		return nil, false
	}
	if m, ok := c.mem.Get(key); ok {
		metrics.RecordCatalogCacheHit("memory")
		return &m, true
	}
	if c.disk != nil {
		var m models.MovieMetadata
		err := c.disk.Get(key, &m)
		if err == nil {
			metrics.RecordCatalogCacheHit("disk")
			c.mem.Add(key, m)
			return &m, true
		}
		if !errors.Is(err, cache.ErrMiss) {
			logging.Warn().Err(err).Str("key", key).Msg("Catalog disk cache read failed")
		}
	}
	metrics.RecordCatalogCacheMiss()
	return nil, false
}

// Set stores m in every tier.
func (c *Cache) Set(key string, m *models.MovieMetadata) {
	if c == nil || m == nil {
		return
	}
	c.mem.Add(key, *m)
	metrics.SetCatalogCacheEntries(c.mem.Len())
	if c.disk != nil {
		if err := c.disk.Set(key, m, c.ttl); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Catalog disk cache write failed")
		}
	}
}

// Maintain drops expired memory entries and compacts the disk tier.
// It returns the number of memory entries removed.
func (c *Cache) Maintain() (int, error) {
	if c == nil {
		return 0, nil
	}
	removed := c.mem.CleanupExpired()
	metrics.SetCatalogCacheEntries(c.mem.Len())
	if c.disk != nil {
		if err := c.disk.RunGC(gcDiscardRatio); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// Len returns the memory tier size.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.mem.Len()
}

// Close releases the disk tier.
func (c *Cache) Close() error {
	if c == nil || c.disk == nil {
		return nil
	}
	return c.disk.Close()
}
