// Package cache keeps completed analyses keyed by the content hash of
// their input file, so re-opening an unchanged part list skips the sniffer
// and the advisory round trip. Entries are evicted least-recently-used
// once the configured capacity is reached.
package cache

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/minio/highwayhash"
	"go.uber.org/zap"

	"dxfgen/app/analyzer"
)

// hashKey is the fixed 32-byte HighwayHash key. Cache keys only need to be
// stable across runs, not secret.
var hashKey = []byte("dxfgen-analysis-cache-hash-key00")

// DefaultMaxEntries caps the cache when no limit is configured.
const DefaultMaxEntries = 32

// Entry holds one cached analysis: the analyzer retains the parsed rows,
// so a cache hit still supports interactive remapping.
type Entry struct {
	Analyzer   *analyzer.Analyzer
	accessTime int64
}

// Cache is a bounded LRU of completed analyses.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	max     int
	clock   int64
	logger  *zap.Logger

	hits   int64
	misses int64
}

// New creates a cache holding at most maxEntries analyses.
func New(maxEntries int, logger *zap.Logger) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]*Entry),
		max:     maxEntries,
		logger:  logger,
	}
}

// Key computes the cache key for a file: the HighwayHash of its content.
func Key(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash, err := highwayhash.New(hashKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Get returns the cached analyzer for key, nil on a miss.
func (c *Cache) Get(key string) *analyzer.Analyzer {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil
	}
	atomic.AddInt64(&c.hits, 1)
	atomic.StoreInt64(&entry.accessTime, atomic.AddInt64(&c.clock, 1))
	return entry.Analyzer
}

// Put stores an analyzer under key, evicting the least recently used entry
// when over capacity.
func (c *Cache) Put(key string, a *analyzer.Analyzer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Analyzer:   a,
		accessTime: atomic.AddInt64(&c.clock, 1),
	}

	for len(c.entries) > c.max {
		oldestKey := ""
		oldest := int64(0)
		for k, e := range c.entries {
			t := atomic.LoadInt64(&e.accessTime)
			if oldestKey == "" || t < oldest {
				oldestKey = k
				oldest = t
			}
		}
		delete(c.entries, oldestKey)
		c.logger.Debug("entrée de cache évincée", zap.String("key", oldestKey))
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}
