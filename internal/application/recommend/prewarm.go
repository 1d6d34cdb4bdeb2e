package recommend

import (
	"context"
	"sync"

	"github.com/mealforge/v1/internal/application/knowledge"
	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PreWarmStatus tracks the lifecycle of a user's background buffer build.
type PreWarmStatus string

const (
	PreWarmPending    PreWarmStatus = "pending"
	PreWarmInProgress PreWarmStatus = "in_progress"
	PreWarmComplete   PreWarmStatus = "complete"
	PreWarmFailed     PreWarmStatus = "failed"
)

// defaultMacros are the placeholder estimates attached to pre-warmed dishes
// until real generation replaces them.
var defaultMacros = dish.Macros{Calories: 450, Protein: 20, Carbs: 50, Fat: 15}

// prewarmBufferSize is how many placeholder dishes one run builds.
const prewarmBufferSize = 6

// PreWarmer builds small per-user dish buffers ahead of the first request so
// tier 1 has something to serve. Runs are keyed by userId and guarded against
// duplicate concurrent execution.
type PreWarmer struct {
	graph    *knowledge.Service
	personas *personaapp.Service
	buffers  outbound.DishBufferStore
	logger   *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	status map[string]PreWarmStatus
}

// NewPreWarmer builds the pre-warm service.
func NewPreWarmer(graph *knowledge.Service, personas *personaapp.Service, buffers outbound.DishBufferStore, logger *zap.Logger) *PreWarmer {
	return &PreWarmer{
		graph:    graph,
		personas: personas,
		buffers:  buffers,
		logger:   logger.Named("prewarm"),
		status:   make(map[string]PreWarmStatus),
	}
}

// Status reports the pre-warm state for a user. Users never warmed report
// pending.
func (w *PreWarmer) Status(userID string) PreWarmStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if s, ok := w.status[userID]; ok {
		return s
	}
	return PreWarmPending
}

// Warm builds and stores the user's buffer synchronously. Concurrent calls
// for the same userId collapse into one run.
func (w *PreWarmer) Warm(ctx context.Context, userID string, p *profile.UserProfile) error {
	_, err, _ := w.group.Do(userID, func() (interface{}, error) {
		return nil, w.warm(ctx, userID, p)
	})
	return err
}

// WarmAsync fires a background run after onboarding. The returned channel
// closes when the run finishes; callers needing a join point can wait on it.
func (w *PreWarmer) WarmAsync(ctx context.Context, userID string, p *profile.UserProfile) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Warm(ctx, userID, p); err != nil {
			w.logger.Warn("Background pre-warm failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}()
	return done
}

func (w *PreWarmer) warm(ctx context.Context, userID string, p *profile.UserProfile) error {
	w.setStatus(userID, PreWarmInProgress)

	assigned := w.personas.Assign(p)
	tpl := w.personas.Lookup(assigned)

	var dishes []*dish.Dish
	seen := make(map[string]bool)

	// Safe templates first: the graph has already applied diet and allergen
	// filters, so these need no further safety pass.
	for _, t := range w.graph.SuggestDishes(p) {
		if len(dishes) >= prewarmBufferSize {
			break
		}
		d := placeholderFromTemplate(t)
		dishes = append(dishes, d)
		seen[d.Name] = true
	}

	// Pad with persona samples the user can also eat.
	if tpl != nil {
		for _, name := range tpl.SampleDishes {
			if len(dishes) >= prewarmBufferSize || seen[name] {
				continue
			}
			d := placeholderFromSample(name, tpl.Description)
			if p != nil && !w.graph.IsDishContextSafe(d, p.Allergens) {
				continue
			}
			dishes = append(dishes, d)
			seen[name] = true
		}
	}

	if err := w.buffers.Put(ctx, userID, dishes); err != nil {
		w.setStatus(userID, PreWarmFailed)
		return err
	}

	w.setStatus(userID, PreWarmComplete)
	w.logger.Info("Pre-warm buffer filled",
		zap.String("user_id", userID),
		zap.String("persona", string(assigned)),
		zap.Int("dishes", len(dishes)),
	)
	return nil
}

func (w *PreWarmer) setStatus(userID string, s PreWarmStatus) {
	w.mu.Lock()
	w.status[userID] = s
	w.mu.Unlock()
}

func placeholderFromTemplate(t dish.Template) *dish.Dish {
	ingredients := make([]dish.Ingredient, len(t.EssentialIngredients))
	for i, name := range t.EssentialIngredients {
		ingredients[i] = dish.Ingredient{Name: name}
	}
	macros := defaultMacros
	return &dish.Dish{
		Name:        t.Name,
		Description: "A " + t.Cuisine + " classic built around " + firstOr(t.EssentialIngredients, "seasonal ingredients") + ".",
		Cuisine:     t.Cuisine,
		Slot:        t.Slot,
		Ingredients: ingredients,
		Macros:      &macros,
		Source:      dish.SourcePreWarm,
	}
}

func placeholderFromSample(name, personaDescription string) *dish.Dish {
	macros := defaultMacros
	return &dish.Dish{
		Name:        name,
		Description: "A starter pick matched to your taste. " + personaDescription,
		Cuisine:     "International",
		Macros:      &macros,
		Source:      dish.SourcePreWarm,
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
