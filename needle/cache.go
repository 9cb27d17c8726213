package needle

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lemiex-tech/stitchview/colorrecord"
)

// cacheColorEntry is the persisted {sequence, needle_number} pair.
type cacheColorEntry struct {
	Sequence     int  `json:"sequence"`
	NeedleNumber *int `json:"needle_number"`
}

// cacheEntry is the persisted value for one content hash.
type cacheEntry struct {
	Assignments Assignment        `json:"assignments"`
	Colors      []cacheColorEntry `json:"colors"`
}

// Cache persists needle assignments by content hash so that reprocessing
// the same file always yields the same needle numbers, even across
// process restarts. Cache is safe for concurrent use: entries is guarded
// by mu, and group collapses concurrent misses for the same hash into a
// single computation.
type Cache struct {
	// Path is the JSON file backing the cache. Defaults to
	// "needle_cache.json" in the current working directory.
	Path string

	mu      sync.Mutex
	entries map[string]cacheEntry
	loaded  bool
	group   singleflight.Group
}

func (c *Cache) path() string {
	if c.Path != "" {
		return c.Path
	}
	return "needle_cache.json"
}

// load reads the cache file into memory if it hasn't been already. A
// missing file is treated as an empty cache, not an error.
func (c *Cache) load() error {
	if c.loaded {
		return nil
	}
	c.entries = map[string]cacheEntry{}
	data, err := os.ReadFile(c.path())
	if err != nil {
		if os.IsNotExist(err) {
			c.loaded = true
			return nil
		}
		return fmt.Errorf("needle: reading cache file: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		// A corrupt cache file is never fatal: treat it as empty and let
		// the next save overwrite it.
		log.Printf("needle: cache file %s is corrupt, treating as empty: %v", c.path(), err)
		c.entries = map[string]cacheEntry{}
	}
	c.loaded = true
	return nil
}

// save persists the in-memory entries to Path, writing to a temp file in
// the same directory first and renaming over the destination so a crash
// mid-write never leaves a truncated cache file.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("needle: encoding cache file: %w", err)
	}

	dst := c.path()
	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, ".needle_cache-*.tmp")
	if err != nil {
		return fmt.Errorf("needle: creating temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("needle: writing temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("needle: closing temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("needle: renaming temp cache file: %w", err)
	}
	return nil
}

func applySequenceMap(colors []colorrecord.ColorDescriptor, seqNeedle map[int]*int) {
	for i := range colors {
		if n, ok := seqNeedle[colors[i].Sequence]; ok {
			colors[i].NeedleNumber = n
		}
	}
}

// Resolve returns the needle assignment table for hash, computing and
// caching it on a miss. colors is mutated in place with each element's
// NeedleNumber, whether the result came from cache or from a fresh
// Assign. Concurrent Resolve calls for the same hash share one
// computation; every caller still gets its own colors slice updated,
// since singleflight only shares the returned value, not side effects on
// a caller's own argument.
func (c *Cache) Resolve(hash string, colors []colorrecord.ColorDescriptor) (Assignment, error) {
	c.mu.Lock()
	if err := c.load(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if entry, ok := c.entries[hash]; ok && len(entry.Assignments) > 0 {
		c.mu.Unlock()
		seqNeedle := make(map[int]*int, len(entry.Colors))
		for _, ce := range entry.Colors {
			seqNeedle[ce.Sequence] = ce.NeedleNumber
		}
		applySequenceMap(colors, seqNeedle)
		return entry.Assignments, nil
	}
	c.mu.Unlock()

	type result struct {
		assignments Assignment
		seqNeedle   map[int]*int
	}

	v, err, _ := c.group.Do(hash, func() (interface{}, error) {
		assignments := Assign(colors)
		seqNeedle := make(map[int]*int, len(colors))
		entry := cacheEntry{Assignments: assignments}
		for _, col := range colors {
			seqNeedle[col.Sequence] = col.NeedleNumber
			entry.Colors = append(entry.Colors, cacheColorEntry{Sequence: col.Sequence, NeedleNumber: col.NeedleNumber})
		}

		c.mu.Lock()
		c.entries[hash] = entry
		saveErr := c.save()
		c.mu.Unlock()
		if saveErr != nil {
			// A write failure never fails the request: the caller still
			// gets its freshly computed assignment, just uncached.
			log.Printf("needle: writing cache file %s: %v", c.path(), saveErr)
		}

		return result{assignments: assignments, seqNeedle: seqNeedle}, nil
	})
	if err != nil {
		return nil, err
	}

	res := v.(result)
	applySequenceMap(colors, res.seqNeedle)
	return res.assignments, nil
}
