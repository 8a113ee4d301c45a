package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a file-based instance registry for CLI applications.
// Instances are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based registry.
// If baseDir is empty, defaults to ~/.config/chartbridge/instances/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "chartbridge", "instances")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create instance dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) instancePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Get retrieves an instance by id.
func (s *FileStore) Get(ctx context.Context, id string) (*Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.instancePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read instance file: %w", err)
	}

	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}
	return &inst, nil
}

// Set stores an instance.
func (s *FileStore) Set(ctx context.Context, inst *Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal instance: %w", err)
	}

	if err := os.WriteFile(s.instancePath(inst.ID), data, 0600); err != nil {
		return fmt.Errorf("write instance file: %w", err)
	}
	return nil
}

// Delete removes an instance.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.instancePath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
