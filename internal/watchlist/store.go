package watchlist

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/five82/popcorn/internal/paths"
)

// DefaultPath is where the watch-list lives unless configured otherwise.
const DefaultPath = "~/.local/share/popcorn/watched.json"

// Store is the single persistent slot holding the serialized watch-list.
// Load returns nil data and no error when the slot has never been written.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the slot in one file, replaced atomically on every save.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for path, expanding a leading tilde. An
// empty path uses DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}
	resolved, err := paths.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch-list path: %w", err)
	}
	return &FileStore{path: resolved}, nil
}

// Path returns the resolved file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file contents.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read watch-list: %w", err)
	}
	return data, nil
}

// Save replaces the file contents.
func (s *FileStore) Save(data []byte) error {
	if err := paths.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write watch-list: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store, mainly for tests.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	saves  int
	SaveFn func([]byte) error // optional hook to inject failures
}

// NewMemoryStore returns a MemoryStore preloaded with data.
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: cloneBytes(data)}
}

// Load returns a copy of the stored bytes.
func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBytes(s.data), nil
}

// Save stores a copy of data.
func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveFn != nil {
		if err := s.SaveFn(data); err != nil {
			return err
		}
	}
	s.data = cloneBytes(data)
	s.saves++
	return nil
}

// Saves returns how many successful saves happened.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	dup := make([]byte, len(data))
	copy(dup, data)
	return dup
}
