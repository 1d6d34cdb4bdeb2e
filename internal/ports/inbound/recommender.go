// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the use cases the HTTP layer drives.
package inbound

import (
	"context"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/persona"
	"github.com/mealforge/v1/internal/domain/profile"
)

// Tier identifies a stage of the streaming response pipeline, ordered by
// increasing latency and personalization quality.
type Tier int

const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
)

// RecommendationRequest is one streaming recommendation request.
type RecommendationRequest struct {
	Profile *profile.UserProfile
	Count   int
	Shown   []string
}

// TierCallbacks receives tier results as they become available. Callbacks
// fire in increasing tier order, each at most once; a nil callback is skipped.
type TierCallbacks struct {
	// OnTier1 delivers the fast cache/pre-warm slice.
	OnTier1 func(dishes []*dish.Dish)

	// OnTier2 delivers the persona/vector-personalized slice, deduplicated
	// against tier 1.
	OnTier2 func(dishes []*dish.Dish)

	// OnTier3Ready signals that the caller should run full generation.
	OnTier3Ready func()
}

// RecommendationService is the primary port for the tiered pipeline.
type RecommendationService interface {
	// StreamRecommendations runs the tier pipeline. Tier failures degrade
	// to later tiers; the call itself never returns a collaborator error.
	StreamRecommendations(ctx context.Context, req RecommendationRequest, cb TierCallbacks)

	// FilterUnseenDishes removes dishes already shown to the user,
	// matching case-insensitively by name and preserving order.
	FilterUnseenDishes(dishes []*dish.Dish, shown []string) []*dish.Dish
}

// OnboardingService initializes a new user for cold-start recommendations.
type OnboardingService interface {
	// InitializeNewUser assigns a persona and seeds the vector store.
	// On failure it returns the fallback persona and ok=false, never an error.
	InitializeNewUser(ctx context.Context, userID string, p *profile.UserProfile) (persona.ID, bool)
}
