package memory

import (
	"context"
	"sync"

	"github.com/mealforge/v1/internal/domain/dish"
)

// DishBufferStore implements the pre-warm buffer port in process memory.
// Buffers are keyed by userId; Take consumes destructively from the front.
type DishBufferStore struct {
	mu      sync.Mutex
	buffers map[string][]*dish.Dish
}

// NewDishBufferStore creates an empty store.
func NewDishBufferStore() *DishBufferStore {
	return &DishBufferStore{buffers: make(map[string][]*dish.Dish)}
}

// Put replaces the user's buffer.
func (s *DishBufferStore) Put(ctx context.Context, userID string, dishes []*dish.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers[userID] = append([]*dish.Dish(nil), dishes...)
	return nil
}

// Take removes and returns up to limit dishes from the user's buffer.
func (s *DishBufferStore) Take(ctx context.Context, userID string, limit int) ([]*dish.Dish, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buffer := s.buffers[userID]
	if len(buffer) == 0 {
		return nil, nil
	}
	if limit > len(buffer) {
		limit = len(buffer)
	}
	taken := buffer[:limit]
	s.buffers[userID] = buffer[limit:]
	return taken, nil
}

// Size reports how many dishes remain buffered.
func (s *DishBufferStore) Size(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers[userID]), nil
}
