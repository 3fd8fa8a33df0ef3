// Package memory provides an in-memory lookup source seeded with the
// canonical code tables, for local development and tests without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/trbngr/refdata/internal/domain"
	"github.com/trbngr/refdata/internal/domain/gender"
)

// Store serves code tables from process memory.
type Store struct {
	mu      sync.RWMutex
	genders map[uuid.UUID]gender.Gender
}

// NewStore creates a Store seeded with the canonical rows.
func NewStore() *Store {
	s := &Store{genders: make(map[uuid.UUID]gender.Gender)}
	for _, g := range gender.Canonical() {
		s.genders[g.ID] = g
	}
	return s
}

// GetGender fetches a single gender row by id.
func (s *Store) GetGender(_ context.Context, id uuid.UUID) (*gender.Gender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.genders[id]
	if !ok {
		return nil, fmt.Errorf("get gender %s: %w", id, domain.ErrNotFound)
	}
	return &g, nil
}

// ListGenders returns every gender row ordered by name.
func (s *Store) ListGenders(_ context.Context) ([]gender.Gender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genders := make([]gender.Gender, 0, len(s.genders))
	for _, g := range s.genders {
		genders = append(genders, g)
	}
	sort.Slice(genders, func(i, j int) bool {
		return genders[i].Name < genders[j].Name
	})
	return genders, nil
}
