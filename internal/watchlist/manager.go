package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/five82/popcorn/internal/movie"
)

// Manager owns the in-memory watch-list and writes it through to a Store on
// every mutation. It is safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	store Store
	items []movie.Watched
}

// Load builds a Manager from the store contents. Absent, unreadable or
// malformed data yields an empty list; the problem is logged, not returned.
func Load(store Store) *Manager {
	m := &Manager{store: store, items: []movie.Watched{}}
	if store == nil {
		return m
	}

	data, err := store.Load()
	if err != nil {
		log.Printf("watch-list load failed, starting empty: %v", err)
		return m
	}
	m.items = decode(data)
	return m
}

func decode(data []byte) []movie.Watched {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []movie.Watched{}
	}

	var raw []movie.Watched
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		log.Printf("watch-list payload malformed, starting empty: %v", err)
		return []movie.Watched{}
	}

	items := make([]movie.Watched, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		if !w.Valid() {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		if w.RuntimeMinutes < 0 {
			w.RuntimeMinutes = 0
		}
		items = append(items, w)
	}
	return items
}

// Add appends w unless a record with the same id is already present. The
// full list is persisted after a successful insert. When persisting fails the
// record stays in memory and the error is returned.
func (m *Manager) Add(w movie.Watched) (bool, error) {
	if !w.Valid() {
		return false, fmt.Errorf("watched record has no id")
	}
	if w.UserRating < movie.MinRating || w.UserRating > movie.MaxRating {
		return false, fmt.Errorf("%w: got %d", movie.ErrInvalidRating, w.UserRating)
	}
	if w.RuntimeMinutes < 0 {
		w.RuntimeMinutes = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexLocked(w.ID) >= 0 {
		return false, nil
	}
	m.items = append(m.items, w)
	return true, m.persistLocked()
}

// Remove deletes the record with id. Missing ids are a no-op and do not
// touch the store.
func (m *Manager) Remove(id string) (bool, error) {
	id = strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return false, nil
	}
	items := make([]movie.Watched, 0, len(m.items)-1)
	items = append(items, m.items[:idx]...)
	items = append(items, m.items[idx+1:]...)
	m.items = items
	return true, m.persistLocked()
}

// Get returns the record with id.
func (m *Manager) Get(id string) (movie.Watched, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return movie.Watched{}, false
	}
	return m.items[idx], true
}

// Contains reports whether id is on the list.
func (m *Manager) Contains(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// List returns a copy of the records in insertion order.
func (m *Manager) List() []movie.Watched {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dup := make([]movie.Watched, len(m.items))
	copy(dup, m.items)
	return dup
}

// Len returns the number of records.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Stats computes the aggregate statistics of the current list.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ComputeStats(m.items)
}

func (m *Manager) indexLocked(id string) int {
	for i, w := range m.items {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persistLocked() error {
	if m.store == nil {
		return nil
	}
	data, err := json.Marshal(m.items)
	if err != nil {
		return fmt.Errorf("encode watch-list: %w", err)
	}
	if err := m.store.Save(data); err != nil {
		return fmt.Errorf("persist watch-list: %w", err)
	}
	return nil
}
