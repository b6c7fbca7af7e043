package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence boundary for the ledger: a flat ordered key
// list readable and writable as a whole.
type Store interface {
	Load() ([]string, error)
	Save(keys []string) error
}

// FileStore persists the key list as a JSON array in a single file
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted key list. A missing file yields an empty list.
//
// Files written by the previous implementation hold a JSON object of
// key -> true instead of an array; those load too, though their insertion
// order is lost (JSON objects carry none).
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err == nil {
		return keys, nil
	}

	var legacy map[string]bool
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parsing ledger file %s: %w", s.path, err)
	}
	keys = make([]string, 0, len(legacy))
	for key := range legacy {
		keys = append(keys, key)
	}
	return keys, nil
}

// Save writes the full key list, replacing the file atomically so a crash
// mid-write cannot corrupt the previous snapshot.
func (s *FileStore) Save(keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and ephemeral deployments
type MemoryStore struct {
	mu   sync.Mutex
	keys []string

	// SaveErr, when set, is returned by Save to exercise failure paths
	SaveErr error
	// Saves counts successful Save calls
	Saves int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(initial ...string) *MemoryStore {
	return &MemoryStore{keys: initial}
}

func (s *MemoryStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys, nil
}

func (s *MemoryStore) Save(keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.keys = make([]string, len(keys))
	copy(s.keys, keys)
	s.Saves++
	return nil
}
