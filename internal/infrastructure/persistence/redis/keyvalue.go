// Package redis provides Redis-backed adapters for the key-value and
// pre-warm buffer ports.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyValueStore implements the key-value port on Redis. Documents are JSON
// blobs keyed "collection:id"; a missing document returns (nil, nil).
type KeyValueStore struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewKeyValueStore creates the adapter. A zero ttl means documents never
// expire.
func NewKeyValueStore(client *goredis.Client, ttl time.Duration, logger *zap.Logger) *KeyValueStore {
	return &KeyValueStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("redis-kv"),
	}
}

func docKey(collection, id string) string {
	return fmt.Sprintf("%s:%s", collection, id)
}

// Get fetches a document, returning (nil, nil) when absent.
func (s *KeyValueStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, docKey(collection, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Debug("Get failed", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a document.
func (s *KeyValueStore) Set(ctx context.Context, collection, id string, data []byte) error {
	if err := s.client.Set(ctx, docKey(collection, id), data, s.ttl).Err(); err != nil {
		s.logger.Error("Set failed", zap.String("collection", collection), zap.Error(err))
		return err
	}
	return nil
}
