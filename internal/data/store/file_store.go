package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the whole cache in one JSON file, the closest
// analogue of browser local storage.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context, clienteID string) ([]CachedTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	return all[clienteID], nil
}

func (s *FileStore) Save(_ context.Context, clienteID string, tickets []CachedTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	all[clienteID] = tickets

	buf, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ticket cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, buf, 0644); err != nil {
		return fmt.Errorf("write ticket cache: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (map[string][]CachedTicket, error) {
	buf, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string][]CachedTicket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ticket cache: %w", err)
	}

	all := map[string][]CachedTicket{}
	if len(buf) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(buf, &all); err != nil {
		return nil, fmt.Errorf("decode ticket cache: %w", err)
	}
	return all, nil
}
