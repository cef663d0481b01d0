// Package history keeps the list of past search queries shown in the
// search-history dropdown.
//
// The list is most-recent-first, holds no two entries that differ only in
// letter case, and never grows beyond MaxEntries. It is persisted as a JSON
// array under a single key of a storage.KV. Storage failures are logged and
// otherwise ignored: the history then lives in memory only.
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/runger/marks/internal/storage"
)

const (
	// MaxEntries caps the number of remembered queries.
	MaxEntries = 20

	// Key is the storage key holding the JSON-encoded list.
	Key = "searchHistory"

	// ioTimeout bounds a single storage round trip.
	ioTimeout = 2 * time.Second
)

// Store owns the history list. The zero value is not usable; use New.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	logger   *slog.Logger
	entries  []string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New loads the history from kv. A nil kv, an unreadable key or a corrupt
// value all yield an empty history.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.entries = s.load()
	return s
}

// Record moves query to the front of the list, dropping any entry equal to
// it under case-insensitive comparison. Blank queries are ignored.
func (s *Store) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(s.entries)+1)
	next = append(next, query)
	for _, e := range s.entries {
		if strings.EqualFold(e, query) {
			continue
		}
		next = append(next, e)
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.entries = next
	s.persist()
}

// Remove deletes entries exactly equal to query.
func (s *Store) Remove(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e != query {
			next = append(next, e)
		}
	}
	s.entries = next
	s.persist()
}

// Clear empties the history.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persist()
}

// List returns a copy of the entries, most recent first.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// IsEmpty reports whether no queries are remembered.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) == 0
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) snapshot() []string {
	if len(s.entries) == 0 {
		return nil
	}
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) load() []string {
	if s.kv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.logger.Warn("history unavailable, starting empty", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("history corrupt, starting empty", "error", err)
		return nil
	}
	return normalize(stored)
}

// persist writes the list; the caller holds s.mu.
func (s *Store) persist() {
	if s.kv == nil {
		return
	}

	entries := s.entries
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn("history encode failed", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.logger.Warn("history not persisted", "error", err)
	}
}

// normalize enforces the list invariants on data read back from storage,
// which may have been written by an older or foreign client.
func normalize(stored []string) []string {
	out := make([]string, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for _, e := range stored {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		k := strings.ToLower(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
		if len(out) == MaxEntries {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
