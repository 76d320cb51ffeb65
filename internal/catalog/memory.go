package catalog

import (
	"context"
	"sort"
	"sync"

	"dinehall/internal/domain"
)

// MemoryStore keeps the catalog in a map. Used by tests and local runs
// without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]domain.MenuItem
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]domain.MenuItem), nextID: 1}
}

func (s *MemoryStore) GetItem(ctx context.Context, id int64) (domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrNotFound
	}
	return m, nil
}

func (s *MemoryStore) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MenuItem
	for _, m := range s.items {
		if m.IsAvailable {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, item domain.MenuItem) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextID
	s.nextID++
	s.items[item.ID] = item
	return item.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	s.items[item.ID] = item
	return nil
}

func (s *MemoryStore) SetAvailability(ctx context.Context, id int64, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.IsAvailable = available
	s.items[id] = m
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
