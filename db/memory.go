package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/capo/model"
	"github.com/jsphweid/capo/sequence"
)

type MemoryStore struct {
	mu           sync.RWMutex
	progressions map[string]model.Progression
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{progressions: make(map[string]model.Progression)}
}

func (m *MemoryStore) Save(ctx context.Context, name string, seq sequence.Sequence) (model.Progression, error) {
	p := model.NewProgression(uuid.New().String(), name, seq, time.Now().UTC())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.progressions[p.ID] = p
	return p, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (model.Progression, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progressions[id]
	if !ok {
		return model.Progression{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]model.Progression, error) {
	m.mu.RLock()
	res := make([]model.Progression, 0, len(m.progressions))
	for _, p := range m.progressions {
		res = append(res, p)
	}
	m.mu.RUnlock()

	sortProgressions(res)
	return res, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.progressions[id]; !ok {
		return ErrNotFound
	}
	delete(m.progressions, id)
	return nil
}
