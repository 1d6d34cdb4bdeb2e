// Package knowledge provides the in-memory ingredient knowledge graph: the
// reference dataset plus the query and mutation operations the safety and
// recommendation pipeline is built on.
package knowledge

import (
	"strings"
	"sync"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/ingredient"
	"github.com/mealforge/v1/internal/domain/profile"
	"go.uber.org/zap"
)

// Service is the knowledge graph. It is read-mostly: nodes are seeded once at
// construction and only appended afterwards, never rewritten or deleted, so a
// single instance is safe to share across request goroutines.
type Service struct {
	mu        sync.RWMutex
	nodes     map[string]*ingredient.Node
	templates []dish.Template
	rules     []ingredient.InferenceRule
	logger    *zap.Logger
}

// NewService builds a graph from a seed dataset. A nil seed or template set
// falls back to the built-in catalog; a nil rule table falls back to the
// default inference rules.
func NewService(seed []ingredient.Node, templates []dish.Template, rules []ingredient.InferenceRule, logger *zap.Logger) *Service {
	if seed == nil {
		seed = SeedIngredients()
	}
	if templates == nil {
		templates = SeedTemplates()
	}
	if rules == nil {
		rules = ingredient.DefaultInferenceRules
	}

	nodes := make(map[string]*ingredient.Node, len(seed))
	for i := range seed {
		node := seed[i]
		nodes[ingredient.Normalize(node.DisplayName)] = &node
	}

	logger = logger.Named("knowledge-graph")
	logger.Info("Knowledge graph seeded",
		zap.Int("ingredients", len(nodes)),
		zap.Int("templates", len(templates)),
	)

	return &Service{
		nodes:     nodes,
		templates: templates,
		rules:     rules,
		logger:    logger,
	}
}

// ValidateIngredient reports whether the name resolves to a known node.
func (s *Service) ValidateIngredient(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[ingredient.Normalize(name)]
	return ok
}

// GetIngredient returns the node for the name, or nil when unknown.
func (s *Service) GetIngredient(name string) *ingredient.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[ingredient.Normalize(name)]
}

// HasAllergen reports whether a known ingredient carries the allergen.
// Unknown ingredients report false: the graph fails open for usability, a
// deliberate product decision rather than a gap to fix here.
func (s *Service) HasAllergen(name string, allergen ingredient.Allergen) bool {
	node := s.GetIngredient(name)
	if node == nil {
		return false
	}
	return node.HasAllergen(allergen)
}

// Size returns the current node count.
func (s *Service) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// LearnFromDish appends Exotic-tier nodes for any dish ingredients the graph
// has not seen, inferring allergens from the keyword rule table. Learning is
// idempotent: an ingredient already known, seeded or learned, is left alone.
func (s *Service) LearnFromDish(d *dish.Dish) {
	if d == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ing := range d.Ingredients {
		key := ingredient.Normalize(ing.Name)
		if key == "" {
			continue
		}
		if _, known := s.nodes[key]; known {
			continue
		}

		category := ing.Category
		if category == "" {
			category = ingredient.CategoryOther
		}
		node := &ingredient.Node{
			DisplayName: strings.TrimSpace(ing.Name),
			Category:    category,
			Tier:        ingredient.TierExotic,
			Allergens:   ingredient.InferAllergens(ing.Name, category, s.rules),
		}
		if d.Cuisine != "" {
			node.CommonIn = []string{d.Cuisine}
		}
		s.nodes[key] = node

		s.logger.Debug("Learned exotic ingredient",
			zap.String("key", key),
			zap.Int("inferred_allergens", len(node.Allergens)),
		)
	}
}

// IsDishContextSafe reports whether a dish is acceptable for a user's
// allergen set. It returns false iff any ingredient resolves to a known node
// whose allergens intersect the set; unknown ingredients never block, and an
// empty set is always safe.
func (s *Service) IsDishContextSafe(d *dish.Dish, userAllergens []ingredient.Allergen) bool {
	if d == nil || len(userAllergens) == 0 {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ing := range d.Ingredients {
		node := s.nodes[ingredient.Normalize(ing.Name)]
		if node != nil && node.HasAnyAllergen(userAllergens) {
			return false
		}
	}
	return true
}

// SuggestDishes filters the static template catalog for a profile: dietary
// compatibility, allergen exclusion via essential ingredients, and an
// optional cuisine match that is substring-insensitive in both directions.
func (s *Service) SuggestDishes(p *profile.UserProfile) []dish.Template {
	if p == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dish.Template
	for _, tpl := range s.templates {
		if !dietAllows(p.DietaryPreference, &tpl) {
			continue
		}
		if s.templateHasAllergen(&tpl, p.Allergens) {
			continue
		}
		if len(p.Cuisines) > 0 && !cuisineMatches(p.Cuisines, tpl.Cuisine) {
			continue
		}
		out = append(out, tpl)
	}
	return out
}

// templateHasAllergen checks a template's essential ingredients against user
// allergens. Callers must hold at least a read lock.
func (s *Service) templateHasAllergen(tpl *dish.Template, allergens []ingredient.Allergen) bool {
	if len(allergens) == 0 {
		return false
	}
	for _, name := range tpl.EssentialIngredients {
		node := s.nodes[ingredient.Normalize(name)]
		if node != nil && node.HasAnyAllergen(allergens) {
			return true
		}
	}
	return false
}

func dietAllows(diet profile.DietaryPreference, tpl *dish.Template) bool {
	switch diet {
	case profile.DietVegetarian:
		return tpl.HasTag(dish.TagVegetarian) || tpl.HasTag(dish.TagVegan)
	case profile.DietVegan:
		return tpl.HasTag(dish.TagVegan)
	default:
		return true
	}
}

func cuisineMatches(preferred []string, cuisine string) bool {
	target := strings.ToLower(cuisine)
	for _, want := range preferred {
		w := strings.ToLower(want)
		if strings.Contains(target, w) || strings.Contains(w, target) {
			return true
		}
	}
	return false
}
