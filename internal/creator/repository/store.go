package repository

import (
	"context"
	"sort"
	"sync"
)

// ============================================================
// Store
// ============================================================

// Store хранит Design State: одна запись на поле, сгруппированные по id дизайна.
type Store interface {
	Load(ctx context.Context, designID string) (map[string]string, error)
	Save(ctx context.Context, designID string, fields map[string]string) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, designID string) error
}

// MemoryStore keeps fields in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]map[string]string)}
}

func (s *MemoryStore) Load(_ context.Context, designID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.designs[designID]))
	for k, v := range s.designs[designID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, designID string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.designs[designID]
	if !ok {
		row = make(map[string]string, len(fields))
		s.designs[designID] = row
	}
	for k, v := range fields {
		row[k] = v
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.designs))
	for id := range s.designs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Delete(_ context.Context, designID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.designs, designID)
	return nil
}

// NopStore заменяет хранилище, когда оно недоступно: Load ничего не находит,
// Save ничего не пишет.
type NopStore struct{}

func (NopStore) Load(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (NopStore) Save(context.Context, string, map[string]string) error { return nil }

func (NopStore) List(context.Context) ([]string, error) { return nil, nil }

func (NopStore) Delete(context.Context, string) error { return nil }
