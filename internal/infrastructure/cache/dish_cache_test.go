package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDish(name string) *dish.Dish {
	return &dish.Dish{
		Name:        name,
		Description: gofakeit.Sentence(8),
		Cuisine:     "Indian",
	}
}

func TestAddAndTakeRecent(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, testDish("Dal Tadka")))
	require.NoError(t, c.Add(ctx, testDish("Chana Masala")))

	got, err := c.TakeRecent(ctx, 5, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Most recently added first.
	assert.Equal(t, "Chana Masala", got[0].Name)
	assert.Equal(t, "Dal Tadka", got[1].Name)
}

func TestTakeRecentIsNonDestructive(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, testDish("Dal Tadka")))

	for i := 0; i < 3; i++ {
		got, err := c.TakeRecent(ctx, 1, nil)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 1, c.Size())
}

func TestTakeRecentHonorsExclude(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, testDish("Dal Tadka")))
	require.NoError(t, c.Add(ctx, testDish("Chana Masala")))

	got, err := c.TakeRecent(ctx, 5, map[string]bool{"chana masala": true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dal Tadka", got[0].Name)
}

func TestAddRefreshesExistingEntry(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, testDish("Dal Tadka")))
	require.NoError(t, c.Add(ctx, testDish("Chana Masala")))
	// Re-adding moves the dish back to the front without duplicating it.
	require.NoError(t, c.Add(ctx, testDish("dal tadka")))

	assert.Equal(t, 2, c.Size())
	got, err := c.TakeRecent(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "dal tadka", got[0].Name)
}

func TestLRUEviction(t *testing.T) {
	c := NewDishCache(3)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		require.NoError(t, c.Add(ctx, testDish(fmt.Sprintf("Dish %d", i))))
	}

	assert.Equal(t, 3, c.Size())
	got, err := c.TakeRecent(ctx, 5, nil)
	require.NoError(t, err)
	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.Name
	}
	assert.NotContains(t, names, "Dish 1", "oldest entry evicted")
	assert.Contains(t, names, "Dish 4")
}

func TestAddIgnoresNilAndUnnamed(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, nil))
	require.NoError(t, c.Add(ctx, &dish.Dish{Description: "no name"}))
	assert.Zero(t, c.Size())
}

func TestClear(t *testing.T) {
	c := NewDishCache(10)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, testDish("Dal Tadka")))

	c.Clear()

	assert.Zero(t, c.Size())
	got, err := c.TakeRecent(ctx, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
