package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore haelt die Historie im Prozessspeicher
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	records map[string][]Record
}

func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit, records: make(map[string][]Record)}
}

func (s *MemoryStore) List(_ context.Context, username string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record{}, s.records[username]...), nil
}

func (s *MemoryStore) Add(_ context.Context, username string, r Record) (Record, error) {
	r = stamp(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]Record{r}, s.records[username]...)
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	s.records[username] = list
	return r, nil
}

func (s *MemoryStore) Delete(_ context.Context, username, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.records[username]
	i := slices.IndexFunc(list, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return nil
	}
	s.records[username] = slices.Delete(slices.Clone(list), i, i+1)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, username)
	return nil
}

func (s *MemoryStore) Sync(_ context.Context, username string, local []Record) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := merge(s.records[username], local, s.limit)
	s.records[username] = merged
	return slices.Clone(merged), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
