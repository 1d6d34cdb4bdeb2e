package recommend

import (
	"context"
	"errors"
	"testing"

	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrchestrator(buffers *fakeBuffers, cache *fakeCache, ai *fakeAI, vectors *fakeVectors, metrics *fakeMetrics) *Orchestrator {
	personas := personaapp.NewService(nil, ai, vectors, zap.NewNop())
	return NewOrchestrator(buffers, cache, personas, ai, vectors, metrics, zap.NewNop())
}

func newUserProfile() *profile.UserProfile {
	return &profile.UserProfile{
		UserID:            "u1",
		DietaryPreference: profile.DietVegetarian,
		Cuisines:          []string{"indian"},
	}
}

func match(name, description string, score float64) outbound.VectorMatch {
	return outbound.VectorMatch{
		ID:    "dish_" + name,
		Score: score,
		Metadata: map[string]string{
			"name":        name,
			"description": description,
			"cuisine":     "Indian",
		},
	}
}

func TestStreamRecommendationsTiersAndDedupe(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.dishes["u1"] = namedDishes("Warm One", "Warm Two")
	cache := &fakeCache{dishes: namedDishes("Cache One", "Cache Two", "Cache Three")}
	ai := &fakeAI{}
	// Persona sample lookups: the first hit duplicates a tier-1 dish and must
	// be skipped; the next two fill the remaining slots.
	vectors := newFakeVectors(
		[]outbound.VectorMatch{match("Warm One", "Already served in tier one.", 0.95)},
		[]outbound.VectorMatch{match("Persona Pick", "A persona-matched dinner.", 0.93)},
		[]outbound.VectorMatch{match("Second Pick", "Another persona-matched dinner.", 0.91)},
	)
	metrics := newFakeMetrics()
	o := newOrchestrator(buffers, cache, ai, vectors, metrics)

	var tier1, tier2 []string
	var order []int
	tier3Ready := false

	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
		Count:   5,
	}, inbound.TierCallbacks{
		OnTier1: func(dishes []*dish.Dish) {
			order = append(order, 1)
			tier1 = dishNames(dishes)
		},
		OnTier2: func(dishes []*dish.Dish) {
			order = append(order, 2)
			tier2 = dishNames(dishes)
		},
		OnTier3Ready: func() {
			order = append(order, 3)
			tier3Ready = true
		},
	})

	// Tier 1: two pre-warmed dishes padded with one cached dish, capped at 3.
	assert.Equal(t, []string{"Warm One", "Warm Two", "Cache One"}, tier1)

	// Tier 2: duplicate skipped, remaining request count honored.
	assert.Equal(t, []string{"Persona Pick", "Second Pick"}, tier2)

	assert.True(t, tier3Ready)
	assert.Equal(t, []int{1, 2, 3}, order)

	assert.Equal(t, 1, metrics.tiers[1])
	assert.Equal(t, 1, metrics.tiers[2])
	assert.Equal(t, 1, metrics.firstDishes, "first dish recorded once")
}

func TestStreamRecommendationsSourceTagging(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.dishes["u1"] = namedDishes("Warm One")
	cache := &fakeCache{dishes: namedDishes("Cache One")}
	o := newOrchestrator(buffers, cache, &fakeAI{}, newFakeVectors(), newFakeMetrics())

	var got []*dish.Dish
	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
		Count:   2,
	}, inbound.TierCallbacks{
		OnTier1: func(dishes []*dish.Dish) { got = dishes },
	})

	require.Len(t, got, 2)
	assert.Equal(t, dish.SourcePreWarm, got[0].Source)
	assert.Equal(t, dish.SourceCache, got[1].Source)
}

func TestStreamRecommendationsReturningUserSimilarityFloor(t *testing.T) {
	buffers := newFakeBuffers()
	cache := &fakeCache{}
	ai := &fakeAI{}
	vectors := newFakeVectors([]outbound.VectorMatch{
		match("Strong Match", "Comfortably above the floor.", 0.92),
		match("Weak Match", "Below the similarity floor.", 0.60),
		{ID: "bare", Score: 0.95, Metadata: map[string]string{"name": "No Description"}},
	})
	o := newOrchestrator(buffers, cache, ai, vectors, newFakeMetrics())

	returning := newUserProfile()
	returning.LikedDishes = []string{"Dal Tadka"}

	var tier2 []string
	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: returning,
		Count:   5,
	}, inbound.TierCallbacks{
		OnTier2: func(dishes []*dish.Dish) { tier2 = dishNames(dishes) },
	})

	assert.Equal(t, []string{"Strong Match"}, tier2,
		"low-score and metadata-poor matches are dropped")
}

func TestStreamRecommendationsShownFilter(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.dishes["u1"] = namedDishes("Warm One", "Warm Two")
	cache := &fakeCache{}
	o := newOrchestrator(buffers, cache, &fakeAI{}, newFakeVectors(), newFakeMetrics())

	var tier1 []string
	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
		Count:   3,
		Shown:   []string{"warm two"},
	}, inbound.TierCallbacks{
		OnTier1: func(dishes []*dish.Dish) { tier1 = dishNames(dishes) },
	})

	assert.Equal(t, []string{"Warm One"}, tier1)
}

func TestStreamRecommendationsDegradesThroughFailures(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.takeErr = errors.New("redis down")
	cache := &fakeCache{takeErr: errors.New("cache down")}
	ai := &fakeAI{embedErr: errors.New("provider down")}
	o := newOrchestrator(buffers, cache, ai, newFakeVectors(), newFakeMetrics())

	tier1Called := false
	tier2Called := false
	tier3Ready := false

	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
		Count:   5,
	}, inbound.TierCallbacks{
		OnTier1:      func([]*dish.Dish) { tier1Called = true },
		OnTier2:      func([]*dish.Dish) { tier2Called = true },
		OnTier3Ready: func() { tier3Ready = true },
	})

	assert.False(t, tier1Called, "empty tiers do not fire callbacks")
	assert.False(t, tier2Called)
	assert.True(t, tier3Ready, "tier 3 readiness always signals")
}

func TestStreamRecommendationsNilCallbacks(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.dishes["u1"] = namedDishes("Warm One")
	o := newOrchestrator(buffers, &fakeCache{}, &fakeAI{}, newFakeVectors(), newFakeMetrics())

	// Must not panic with no callbacks registered.
	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
	}, inbound.TierCallbacks{})
}

func TestStreamRecommendationsTier2SkippedWhenTier1Fills(t *testing.T) {
	buffers := newFakeBuffers()
	buffers.dishes["u1"] = namedDishes("Warm One", "Warm Two", "Warm Three")
	vectors := newFakeVectors([]outbound.VectorMatch{match("Persona Pick", "Should never surface.", 0.9)})
	o := newOrchestrator(buffers, &fakeCache{}, &fakeAI{}, vectors, newFakeMetrics())

	tier2Called := false
	o.StreamRecommendations(context.Background(), inbound.RecommendationRequest{
		Profile: newUserProfile(),
		Count:   3,
	}, inbound.TierCallbacks{
		OnTier2: func([]*dish.Dish) { tier2Called = true },
	})

	assert.False(t, tier2Called, "request already satisfied by tier 1")
}
