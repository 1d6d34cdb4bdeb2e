// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the collaborator contracts the recommendation core
// depends on: LLM generation, embeddings, vector search, and key-value storage.
package outbound

import (
	"context"

	"github.com/mealforge/v1/internal/domain/dish"
)

// DishConstraints narrows what the generator may produce for one request.
type DishConstraints struct {
	DietaryPreference string
	Allergens         []string
	Cuisines          []string
	SafetyContext     string
	PromptContext     string
	Count             int
}

// SessionSummary is the structured result of the session summarization call.
type SessionSummary struct {
	Summary           string             `json:"summary" validate:"required"`
	CuisineAffinities map[string]float64 `json:"cuisine_affinities"`
	AvoidPatterns     []string           `json:"avoid_patterns"`
}

// AIService is the contract for the black-box LLM collaborator. Responses are
// parsed into typed structs and validated on receipt; a schema mismatch
// surfaces as a GenerationError from the adapter.
type AIService interface {
	// GenerateDishes produces candidate dishes for the given constraints.
	GenerateDishes(ctx context.Context, constraints DishConstraints) ([]*dish.Dish, error)

	// SummarizeSession condenses a session digest into a long-term summary.
	SummarizeSession(ctx context.Context, digest string) (*SessionSummary, error)

	// GenerateEmbedding returns a fixed-dimension embedding for the text,
	// or an error when the provider fails.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
