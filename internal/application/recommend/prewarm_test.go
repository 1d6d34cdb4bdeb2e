package recommend

import (
	"context"
	"sync"
	"testing"

	"github.com/mealforge/v1/internal/application/knowledge"
	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/ingredient"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPreWarmer(buffers *fakeBuffers) *PreWarmer {
	graph := knowledge.NewService(nil, nil, nil, zap.NewNop())
	personas := personaapp.NewService(nil, &fakeAI{}, newFakeVectors(), zap.NewNop())
	return NewPreWarmer(graph, personas, buffers, zap.NewNop())
}

func TestPreWarmStatusLifecycle(t *testing.T) {
	buffers := newFakeBuffers()
	w := newPreWarmer(buffers)

	assert.Equal(t, PreWarmPending, w.Status("u1"), "unwarmed users report pending")

	err := w.Warm(context.Background(), "u1", &profile.UserProfile{
		UserID:            "u1",
		DietaryPreference: profile.DietVegetarian,
		Cuisines:          []string{"indian"},
	})
	require.NoError(t, err)
	assert.Equal(t, PreWarmComplete, w.Status("u1"))
}

func TestWarmFillsBufferWithSafeDishes(t *testing.T) {
	buffers := newFakeBuffers()
	w := newPreWarmer(buffers)

	p := &profile.UserProfile{
		UserID:            "u1",
		DietaryPreference: profile.DietVegetarian,
		Allergens:         []ingredient.Allergen{ingredient.AllergenDairy},
	}
	require.NoError(t, w.Warm(context.Background(), "u1", p))

	put := buffers.puts["u1"]
	require.NotEmpty(t, put)
	assert.LessOrEqual(t, len(put), prewarmBufferSize)
	for _, d := range put {
		assert.Equal(t, dish.SourcePreWarm, d.Source)
		assert.NotEmpty(t, d.Description)
		require.NotNil(t, d.Macros)
	}

	// The vegetarian dairy-free filter must have dropped paneer dishes.
	assert.NotContains(t, dishNames(put), "Palak Paneer")
	assert.NotContains(t, dishNames(put), "Chicken Tikka")
}

func TestWarmCollapsesConcurrentRuns(t *testing.T) {
	buffers := newFakeBuffers()
	w := newPreWarmer(buffers)
	p := &profile.UserProfile{UserID: "u1", DietaryPreference: profile.DietVegan}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Warm(context.Background(), "u1", p)
		}()
	}
	wg.Wait()

	assert.Equal(t, PreWarmComplete, w.Status("u1"))
	assert.NotEmpty(t, buffers.puts["u1"])
}

func TestWarmAsyncSignalsCompletion(t *testing.T) {
	buffers := newFakeBuffers()
	w := newPreWarmer(buffers)

	done := w.WarmAsync(context.Background(), "u1", &profile.UserProfile{UserID: "u1"})
	<-done

	assert.Equal(t, PreWarmComplete, w.Status("u1"))
	assert.NotEmpty(t, buffers.puts["u1"])
}
