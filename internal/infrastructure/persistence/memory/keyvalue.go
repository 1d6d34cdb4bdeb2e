// Package memory provides in-memory adapters for the key-value and pre-warm
// buffer ports, used in tests and single-process runs without Redis.
package memory

import (
	"context"
	"sync"
)

// KeyValueStore implements the key-value port on a plain map.
type KeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKeyValueStore creates an empty store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string][]byte)}
}

// Get returns (nil, nil) when the document is absent.
func (s *KeyValueStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[collection+":"+id]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a document.
func (s *KeyValueStore) Set(ctx context.Context, collection, id string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection+":"+id] = stored
	return nil
}
