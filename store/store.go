// Package store persists completed analyses.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seo-optimizer/semantic/models"
)

// ErrNotFound is returned when no analysis has the requested ID
var ErrNotFound = errors.New("analysis not found")

// AnalysisStore keeps completed analyses. Records are immutable once saved,
// so there is no update operation.
type AnalysisStore interface {
	// GetAll lists every analysis, newest first
	GetAll(ctx context.Context) ([]models.Analysis, error)
	GetByID(ctx context.Context, id string) (models.Analysis, error)
	// Save stores a, assigning an ID and timestamp when missing, and
	// returns the stored record
	Save(ctx context.Context, a models.Analysis) (models.Analysis, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// MemoryStore is an AnalysisStore backed by a map
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]models.Analysis
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]models.Analysis),
		now:      time.Now,
	}
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		out = append(out, a)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return models.Analysis{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analyses[id]
	if !ok {
		return models.Analysis{}, ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) Save(ctx context.Context, a models.Analysis) (models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return models.Analysis{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
	return a, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	delete(s.analyses, id)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses), nil
}

func (s *MemoryStore) lookup(id string) (models.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	return a, ok
}

func (s *MemoryStore) put(a models.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
}

func (s *MemoryStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.analyses, id)
}

// sortNewestFirst orders by timestamp descending, ID ascending on ties
func sortNewestFirst(list []models.Analysis) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].ID < list[j].ID
	})
}
