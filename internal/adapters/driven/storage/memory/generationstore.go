// Package memory provides in-memory store implementations, used by
// tests and by deployments that do not need persistence.
package memory

import (
	"fmt"
	"sync"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// Ensure GenerationStore implements the interface.
var _ driven.GenerationStore = (*GenerationStore)(nil)

// GenerationStore is an in-memory implementation of
// driven.GenerationStore.
type GenerationStore struct {
	mu      sync.RWMutex
	records map[string]domain.Generation
}

// NewGenerationStore creates a new in-memory generation store.
func NewGenerationStore() *GenerationStore {
	return &GenerationStore{
		records: make(map[string]domain.Generation),
	}
}

// Create inserts a new generation record.
func (s *GenerationStore) Create(g *domain.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[g.ID]; ok {
		return fmt.Errorf("generation %s already exists", g.ID)
	}
	s.records[g.ID] = *g
	return nil
}

// Get retrieves a generation by ID.
func (s *GenerationStore) Get(id string) (*domain.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: generation %s", domain.ErrNotFound, id)
	}
	return &g, nil
}

// Update overwrites an existing record.
func (s *GenerationStore) Update(g *domain.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[g.ID]; !ok {
		return fmt.Errorf("%w: generation %s", domain.ErrNotFound, g.ID)
	}
	s.records[g.ID] = *g
	return nil
}

// Delete removes a record.
func (s *GenerationStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
