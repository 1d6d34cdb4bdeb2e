// Package persona implements the persona assignment engine: scoring a user
// profile against the static template set for cold-start recommendations.
package persona

import (
	"context"
	"fmt"
	"strings"

	"github.com/mealforge/v1/internal/domain/persona"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Scoring weights. Assignment is additive over all signals.
const (
	conditionWeight      = 3.0
	dietaryWeight        = 2.0
	cuisineWeight        = 1.0
	cuisineDeclaredBonus = 0.5
	goalLoseWeight       = 2.0
	activityActiveWeight = 1.0
	activityModerateWeight = 0.5
)

// PersonaVectorNamespace is where per-user persona vectors live.
const PersonaVectorNamespace = "personas"

// Service scores profiles against the static persona templates.
type Service struct {
	templates []persona.Persona
	ai        outbound.AIService
	vectors   outbound.VectorIndex
	logger    *zap.Logger
}

// NewService builds the engine. A nil template slice falls back to the
// built-in set. The AI and vector collaborators are only needed for
// InitializeNewUser; Assign is pure.
func NewService(templates []persona.Persona, ai outbound.AIService, vectors outbound.VectorIndex, logger *zap.Logger) *Service {
	if templates == nil {
		templates = Templates()
	}
	return &Service{
		templates: templates,
		ai:        ai,
		vectors:   vectors,
		logger:    logger.Named("persona-engine"),
	}
}

// Templates exposes the engine's template set.
func (s *Service) Templates() []persona.Persona {
	return s.templates
}

// Lookup returns the template for an id, or nil.
func (s *Service) Lookup(id persona.ID) *persona.Persona {
	for i := range s.templates {
		if s.templates[i].ID == id {
			return &s.templates[i]
		}
	}
	return nil
}

// Assign picks the best-matching persona for a profile. It is a pure function
// of the profile and the static templates: the same profile always yields the
// same persona, with ties broken by template order.
func (s *Service) Assign(p *profile.UserProfile) persona.ID {
	if p == nil || len(s.templates) == 0 {
		return persona.Fallback
	}

	best := s.templates[0].ID
	bestScore := -1.0
	for i := range s.templates {
		score := s.score(&s.templates[i], p)
		if score > bestScore {
			best = s.templates[i].ID
			bestScore = score
		}
	}
	return best
}

func (s *Service) score(tpl *persona.Persona, p *profile.UserProfile) float64 {
	var score float64

	for _, cond := range p.Conditions {
		for _, id := range conditionAffinity[strings.ToLower(strings.TrimSpace(cond))] {
			if id == tpl.ID {
				score += conditionWeight
			}
		}
	}

	for _, id := range dietAffinity[p.DietaryPreference] {
		if id == tpl.ID {
			score += dietaryWeight
		}
	}

	for _, cuisine := range p.Cuisines {
		key := strings.ToLower(strings.TrimSpace(cuisine))
		for _, id := range cuisineAffinity[key] {
			if id == tpl.ID {
				score += cuisineWeight
			}
		}
		if w, ok := tpl.CuisineWeights[key]; ok {
			score += cuisineDeclaredBonus * w
		}
	}

	if p.Biometrics.Goal == profile.GoalLose && tpl.ID == persona.WeightManagement {
		score += goalLoseWeight
	}
	switch p.Biometrics.ActivityLevel {
	case profile.ActivityActive:
		if tpl.ID == persona.BusyProfessional {
			score += activityActiveWeight
		}
	case profile.ActivityModerate:
		if tpl.ID == persona.HealthEnthusiast {
			score += activityModerateWeight
		}
	}

	return score
}

// InitializeNewUser assigns a persona, renders a descriptive blob from the
// persona and profile, and upserts its embedding to the vector store under a
// deterministic key. Any failure degrades to the fallback persona and
// ok=false; nothing propagates to the caller.
func (s *Service) InitializeNewUser(ctx context.Context, userID string, p *profile.UserProfile) (persona.ID, bool) {
	assigned := s.Assign(p)
	tpl := s.Lookup(assigned)
	if tpl == nil {
		s.logger.Warn("Assigned persona has no template", zap.String("persona", string(assigned)))
		return persona.Fallback, false
	}

	blob := describeUser(tpl, p)
	embedding, err := s.ai.GenerateEmbedding(ctx, blob)
	if err != nil || len(embedding) == 0 {
		s.logger.Warn("Persona embedding failed, continuing without vector",
			zap.String("user_id", userID), zap.Error(err))
		return persona.Fallback, false
	}

	record := outbound.VectorRecord{
		ID:     fmt.Sprintf("user_%s_persona", userID),
		Values: embedding,
		Metadata: map[string]string{
			"user_id": userID,
			"persona": string(assigned),
			"profile": blob,
		},
	}
	if err := s.vectors.Upsert(ctx, []outbound.VectorRecord{record}, PersonaVectorNamespace); err != nil {
		s.logger.Warn("Persona vector upsert failed",
			zap.String("user_id", userID), zap.Error(err))
		return persona.Fallback, false
	}

	s.logger.Info("User initialized with persona",
		zap.String("user_id", userID), zap.String("persona", string(assigned)))
	return assigned, true
}

// describeUser renders the text blob embedded for vector matching.
func describeUser(tpl *persona.Persona, p *profile.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Persona: %s. %s", tpl.ID, tpl.Description)
	if len(tpl.Preferences) > 0 {
		fmt.Fprintf(&b, " Prefers %s.", strings.Join(tpl.Preferences, ", "))
	}
	if p != nil {
		if p.DietaryPreference != "" {
			fmt.Fprintf(&b, " Diet: %s.", p.DietaryPreference)
		}
		if len(p.Cuisines) > 0 {
			fmt.Fprintf(&b, " Cuisines: %s.", strings.Join(p.Cuisines, ", "))
		}
		if len(p.Allergens) > 0 {
			names := make([]string, len(p.Allergens))
			for i, a := range p.Allergens {
				names[i] = string(a)
			}
			fmt.Fprintf(&b, " Avoids: %s.", strings.Join(names, ", "))
		}
	}
	return b.String()
}
