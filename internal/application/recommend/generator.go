package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/mealforge/v1/internal/application/knowledge"
	memoryapp "github.com/mealforge/v1/internal/application/memory"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// GenerationRecorder receives full-generation timings. Implemented by the
// latency tracker; nil disables recording.
type GenerationRecorder interface {
	RecordGeneration(duration time.Duration, served int)
}

// Generator runs tier 3: full LLM dish generation gated by the deterministic
// safety validator, with accepted dishes fed back into the graph, the cache,
// and the vector index.
type Generator struct {
	graph    *knowledge.Service
	contexts *memoryapp.Service
	ai       outbound.AIService
	cache    outbound.DishCache
	vectors  outbound.VectorIndex
	metrics  GenerationRecorder
	logger   *zap.Logger
}

// NewGenerator builds the tier-3 service.
func NewGenerator(
	graph *knowledge.Service,
	contexts *memoryapp.Service,
	ai outbound.AIService,
	cache outbound.DishCache,
	vectors outbound.VectorIndex,
	metrics GenerationRecorder,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		graph:    graph,
		contexts: contexts,
		ai:       ai,
		cache:    cache,
		vectors:  vectors,
		metrics:  metrics,
		logger:   logger.Named("generator"),
	}
}

// Generate produces up to count validated dishes for the profile. Dishes that
// fail the safety check or carry the user's allergens are dropped, never
// repaired. Accepted dishes teach the graph their ingredients and land in the
// recency cache for future tier-1 reuse.
func (g *Generator) Generate(ctx context.Context, p *profile.UserProfile, count int, shown []string) ([]*dish.Dish, error) {
	start := time.Now()

	candidates, err := g.ai.GenerateDishes(ctx, g.constraints(p, count))
	if err != nil {
		return nil, err
	}

	var accepted []*dish.Dish
	for _, d := range candidates {
		if err := dish.Check(d); err != nil {
			g.logger.Info("Generated dish rejected",
				zap.String("dish", d.Name), zap.Error(err))
			continue
		}
		if p != nil && !g.graph.IsDishContextSafe(d, p.Allergens) {
			g.logger.Info("Generated dish blocked by allergen check",
				zap.String("dish", d.Name))
			continue
		}
		g.graph.LearnFromDish(d)
		if err := g.cache.Add(ctx, d); err != nil {
			g.logger.Warn("Dish cache write failed", zap.String("dish", d.Name), zap.Error(err))
		}
		accepted = append(accepted, d)
	}

	accepted = FilterUnseenDishes(accepted, shown)
	g.indexDishes(ctx, accepted)

	if g.metrics != nil {
		g.metrics.RecordGeneration(time.Since(start), len(accepted))
	}
	g.logger.Info("Generation round complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(accepted)),
		zap.Duration("took", time.Since(start)),
	)
	return accepted, nil
}

func (g *Generator) constraints(p *profile.UserProfile, count int) outbound.DishConstraints {
	c := outbound.DishConstraints{Count: count}
	if p == nil {
		c.SafetyContext = g.graph.SafetyContext(nil, nil)
		return c
	}

	c.DietaryPreference = string(p.DietaryPreference)
	c.Cuisines = p.Cuisines
	for _, a := range p.Allergens {
		c.Allergens = append(c.Allergens, string(a))
	}
	c.SafetyContext = g.graph.SafetyContext(p.Allergens, p.Conditions)
	if g.contexts != nil {
		c.PromptContext = g.contexts.OptimizedContext(p.UserID, memoryapp.ModeRecommend)
	}
	return c
}

// indexDishes upserts accepted dishes into the dish vector namespace so tier 2
// can surface them later. Best-effort: embedding or upsert failures only log.
func (g *Generator) indexDishes(ctx context.Context, dishes []*dish.Dish) {
	for _, d := range dishes {
		embedding, err := g.ai.GenerateEmbedding(ctx, d.Name+" "+d.Description)
		if err != nil || len(embedding) == 0 {
			g.logger.Debug("Dish embedding failed", zap.String("dish", d.Name), zap.Error(err))
			continue
		}
		record := outbound.VectorRecord{
			ID:     "dish_" + strings.ToLower(strings.ReplaceAll(d.Name, " ", "_")),
			Values: embedding,
			Metadata: map[string]string{
				"name":        d.Name,
				"description": d.Description,
				"cuisine":     d.Cuisine,
				"slot":        string(d.Slot),
			},
		}
		if err := g.vectors.Upsert(ctx, []outbound.VectorRecord{record}, DishVectorNamespace); err != nil {
			g.logger.Debug("Dish vector upsert failed", zap.String("dish", d.Name), zap.Error(err))
		}
	}
}
