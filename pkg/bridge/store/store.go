// Package store provides registries for bound chart instances.
//
// The registry is the remote side's record of each rendered chart: its type,
// current data, options, and cached column-role mapping. The Store interface
// has implementations for different deployments:
//   - memory: in-process storage for development/testing and embedded use
//   - file: file-based storage for CLI applications
//   - redis: Redis-backed storage for multi-instance server deployments
//   - mongo: MongoDB-backed storage where instance records should persist
//
// All implementations return nil, nil from Get for unknown ids; callers
// translate that to their own not-found semantics.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/options"
)

// Instance is the stored record of one bound chart instance.
type Instance struct {
	ID        string       `json:"id"`
	ChartType chart.Type   `json:"chart_type"`
	Meta      chart.Meta   `json:"meta"`
	Data      *chart.Data  `json:"data,omitempty"`
	Options   options.Tree `json:"options,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// encodeInstance serializes an instance record for backends that store it
// as an opaque blob.
func encodeInstance(inst *Instance) ([]byte, error) {
	data, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("marshal instance: %w", err)
	}
	return data, nil
}

// decodeInstance is the inverse of encodeInstance.
func decodeInstance(data []byte) (*Instance, error) {
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}
	return &inst, nil
}

// Store is the interface for instance registry backends.
type Store interface {
	// Get retrieves an instance by id. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Instance, error)

	// Set stores an instance, replacing any existing record with the same id.
	Set(ctx context.Context, inst *Instance) error

	// Delete removes an instance. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// MemoryStore is an in-process registry for development, testing, and
// embedded single-process deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{instances: make(map[string]*Instance)}
}

// Get retrieves an instance by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[id]
	if !ok {
		return nil, nil
	}
	cp := *inst
	return &cp, nil
}

// Set stores an instance.
func (s *MemoryStore) Set(ctx context.Context, inst *Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *inst
	s.instances[inst.ID] = &cp
	return nil
}

// Delete removes an instance.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.instances, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
