package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cloudeng.io/errors"
	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

// HolidayStore caches holiday lists per country and year, in memory and,
// when dir is set, as JSON files in dir.
type HolidayStore struct {
	dir     string
	mu      sync.RWMutex
	entries map[string][]calendar.Event
}

// NewHolidayStore returns a store backed by dir. An empty dir keeps the cache
// in memory only.
func NewHolidayStore(dir string) *HolidayStore {
	return &HolidayStore{dir: dir, entries: make(map[string][]calendar.Event)}
}

func cacheKey(country string, year int) string {
	return fmt.Sprintf("%s_%d", country, year)
}

func (s *HolidayStore) path(country string, year int) string {
	return filepath.Join(s.dir, CacheFilePrefix+cacheKey(country, year)+".json")
}

// Get returns the cached holidays, loading them from disk on first use.
func (s *HolidayStore) Get(country string, year int) ([]calendar.Event, bool) {
	key := cacheKey(country, year)
	s.mu.RLock()
	events, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return clone(events), true
	}
	if s.dir == "" {
		return nil, false
	}

	entry, err := s.loadFile(s.path(country, year))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  Ignoring unreadable cache file for %s %d: %v", country, year, err)
		}
		return nil, false
	}

	return s.remember(key, entry.Events), true
}

// remember keeps events loaded from disk unless a newer list was stored
// meanwhile, and returns a copy of the list now held in memory.
func (s *HolidayStore) remember(key string, events []calendar.Event) []calendar.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[key]; ok {
		return clone(current)
	}
	s.entries[key] = events
	return clone(events)
}

// Put stores the holidays in memory and writes them to disk.
func (s *HolidayStore) Put(country string, year int, source string, events []calendar.Event) error {
	events = clone(events)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cacheKey(country, year)] = events
	if s.dir == "" {
		return nil
	}
	entry := CacheEntry{
		Country: country,
		Year:    year,
		Events:  events,
		Metadata: map[string]string{
			MetadataCreatedAt: time.Now().UTC().Format(time.RFC3339),
			MetadataSource:    source,
		},
	}
	return s.saveFileLocked(s.path(country, year), entry)
}

// Delete removes a single entry.
func (s *HolidayStore) Delete(country string, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cacheKey(country, year))
	if s.dir == "" {
		return nil
	}
	if err := os.Remove(s.path(country, year)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Purge removes every cached entry.
func (s *HolidayStore) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]calendar.Event)
	if s.dir == "" {
		return nil
	}
	files, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	errs := &errors.M{}
	for _, f := range files {
		if f.IsDir() || !strings.HasPrefix(f.Name(), CacheFilePrefix) {
			continue
		}
		errs.Append(os.Remove(filepath.Join(s.dir, f.Name())))
	}
	return errs.Err()
}

func (s *HolidayStore) loadFile(filename string) (*CacheEntry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// saveFileLocked writes entry via a temp file and rename (caller must hold lock)
func (s *HolidayStore) saveFileLocked(filename string, entry CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmpFile := filename + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpFile, filename)
}

func clone(events []calendar.Event) []calendar.Event {
	return append([]calendar.Event{}, events...)
}

// CachedSource answers from Store and falls back to Next, caching successful
// results.
type CachedSource struct {
	Store *HolidayStore
	Next  HolidaySource
	Name  string
}

// Holidays implements HolidaySource.
func (c *CachedSource) Holidays(ctx context.Context, country string, year int) ([]calendar.Event, error) {
	if events, ok := c.Store.Get(country, year); ok {
		return events, nil
	}
	events, err := c.Next.Holidays(ctx, country, year)
	if err != nil {
		return nil, err
	}
	if err := c.Store.Put(country, year, c.Name, events); err != nil {
		log.Printf("Warning: failed to save to cache: %v", err)
	} else {
		log.Printf("✅ Cached %d holidays for %s %d", len(events), country, year)
	}
	return events, nil
}

// Refresh drops the cached entry and fetches it again.
func (c *CachedSource) Refresh(ctx context.Context, country string, year int) ([]calendar.Event, error) {
	if err := c.Store.Delete(country, year); err != nil {
		return nil, err
	}
	return c.Holidays(ctx, country, year)
}
