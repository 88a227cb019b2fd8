// Package cache implements the persistent term-to-record store backing the
// lazy loader. The whole table lives in memory and serializes to a single
// JSON file; flushes replace the file atomically so a failure mid-write never
// truncates previously persisted data.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// filePerm is the mode for newly written cache files.
const filePerm = 0o644

// Store is a persistent SearchTerm -> CleanRecord mapping. The zero value is
// not usable; construct with New. Safe for concurrent use.
type Store struct {
	path    string
	mu      sync.RWMutex
	flushMu sync.Mutex
	records map[domain.SearchTerm]domain.CleanRecord
}

// New creates a store backed by the file at path. The file is not touched
// until Load or Flush is called.
func New(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[domain.SearchTerm]domain.CleanRecord),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load deserializes the backing file into the in-memory table. An absent
// file leaves the store empty; an unreadable or undecodable file returns
// ErrCacheCorrupt without modifying the file, so user data is never silently
// discarded.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrCacheCorrupt, s.path, err)
	}

	records := make(map[domain.SearchTerm]domain.CleanRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrCacheCorrupt, s.path, err)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	return nil
}

// Get returns the record for the given term. Pure lookup, no side effects.
func (s *Store) Get(term domain.SearchTerm) (domain.CleanRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[term]
	return record, ok
}

// Put inserts or overwrites the record for the given term in the in-memory
// table. The change is visible to subsequent Get calls immediately; call
// Flush to persist it.
func (s *Store) Put(term domain.SearchTerm, record domain.CleanRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[term] = record
}

// Len returns the number of cached records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Terms returns all cached terms in sorted order.
func (s *Store) Terms() []domain.SearchTerm {
	s.mu.RLock()
	terms := make([]domain.SearchTerm, 0, len(s.records))
	for term := range s.records {
		terms = append(terms, term)
	}
	s.mu.RUnlock()

	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	return terms
}

// Flush serializes the full table to the backing file, replacing it
// atomically: the table is written to a temp file in the same directory and
// renamed over the target, so a crash mid-write leaves the previous file
// intact. Flushes are serialized so an older snapshot can never rename over
// a newer one; records are still readable and writable while the file IO
// runs.
func (s *Store) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.RLock()
	data, err := json.MarshalIndent(s.records, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding cache table: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting cache file mode: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache file: %w", err)
	}

	return nil
}
