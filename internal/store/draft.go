package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"docurequest/pkg/types"
)

// DraftStore persists one serialized RequestState per key. Implementations
// must be safe for concurrent use; each key has a single writer.
type DraftStore interface {
	// Load returns types.ErrDraftNotFound when nothing was stored under key.
	Load(ctx context.Context, key string) (*types.RequestState, error)
	Save(ctx context.Context, key string, state *types.RequestState) error
	Delete(ctx context.Context, key string) error
}

type MemoryDraftStore struct {
	mutex  sync.Mutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string][]byte),
	}
}

func (s *MemoryDraftStore) Load(_ context.Context, key string) (*types.RequestState, error) {
	s.mutex.Lock()
	data, ok := s.drafts[key]
	s.mutex.Unlock()

	if !ok {
		return nil, types.ErrDraftNotFound
	}

	return decodeDraft(data)
}

func (s *MemoryDraftStore) Save(_ context.Context, key string, state *types.RequestState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.drafts[key] = data
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.drafts, key)
	return nil
}

func decodeDraft(data []byte) (*types.RequestState, error) {
	var state = new(types.RequestState)
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return state, nil
}
