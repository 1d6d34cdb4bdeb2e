package outbound

import (
	"context"

	"github.com/mealforge/v1/internal/domain/dish"
)

// DishCache is the tier-1 pad source: previously generated dishes held in a
// bounded cache and served while personalization is still in flight.
type DishCache interface {
	// TakeRecent returns up to limit cached dishes, excluding any whose
	// lowercase name appears in the exclude set.
	TakeRecent(ctx context.Context, limit int, exclude map[string]bool) ([]*dish.Dish, error)

	// Add stores a generated dish for later tier-1 reuse.
	Add(ctx context.Context, d *dish.Dish) error
}

// DishBufferStore holds per-user pre-warmed dish buffers. Consumption is
// destructive: a dish handed to tier 1 leaves the buffer.
type DishBufferStore interface {
	// Put replaces the user's buffer.
	Put(ctx context.Context, userID string, dishes []*dish.Dish) error

	// Take removes and returns up to limit dishes from the user's buffer.
	Take(ctx context.Context, userID string, limit int) ([]*dish.Dish, error)

	// Size reports how many dishes remain buffered for the user.
	Size(ctx context.Context, userID string) (int, error)
}
