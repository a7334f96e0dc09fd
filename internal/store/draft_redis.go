package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docurequest/pkg/types"

	"github.com/redis/go-redis/v9"
)

type RedisDraftStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisDraftStore(client *redis.Client, namespace string, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, namespace: namespace, ttl: ttl}
}

func createDraftKey(namespace, key string) string {
	return fmt.Sprintf("%s:draft:%s", namespace, key)
}

func (s *RedisDraftStore) Load(ctx context.Context, key string) (*types.RequestState, error) {
	data, err := s.client.Get(ctx, createDraftKey(s.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft from redis: %w", err)
	}

	return decodeDraft(data)
}

// Save refreshes the expiry so active sessions never lose their draft.
func (s *RedisDraftStore) Save(ctx context.Context, key string, state *types.RequestState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	err = s.client.Set(ctx, createDraftKey(s.namespace, key), data, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save draft to redis: %w", err)
	}

	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, createDraftKey(s.namespace, key)).Err()
}
