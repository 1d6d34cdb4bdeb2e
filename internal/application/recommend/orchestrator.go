// Package recommend implements the streaming tiered response pipeline:
// tier 1 serves pre-warmed and cached dishes within milliseconds, tier 2
// personalizes via persona and vector search, tier 3 hands off to full
// generation. Tiers run sequentially and degrade independently.
package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

const (
	// tier1Cap is how many dishes tier 1 may assemble from buffers + cache.
	tier1Cap = 3

	// tier2MinScore is the similarity floor for returning-user semantic hits.
	tier2MinScore = 0.8

	// DishVectorNamespace is where dish metadata vectors live.
	DishVectorNamespace = "dishes"
)

// MetricsRecorder receives pipeline observations. Implemented by the latency
// tracker in infrastructure/monitoring; a nil recorder disables recording.
type MetricsRecorder interface {
	RecordTier(tier int, duration time.Duration, served int)
	RecordCacheLookup(hit bool)
	RecordVectorLookup(hit bool)
	RecordPreWarmLookup(hit bool)
	RecordFirstDish(latency time.Duration, newUser bool)
}

// Orchestrator coordinates the three tiers.
type Orchestrator struct {
	buffers  outbound.DishBufferStore
	cache    outbound.DishCache
	personas *persona.Service
	ai       outbound.AIService
	vectors  outbound.VectorIndex
	metrics  MetricsRecorder
	logger   *zap.Logger
}

// NewOrchestrator builds the pipeline coordinator.
func NewOrchestrator(
	buffers outbound.DishBufferStore,
	cache outbound.DishCache,
	personas *persona.Service,
	ai outbound.AIService,
	vectors outbound.VectorIndex,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		buffers:  buffers,
		cache:    cache,
		personas: personas,
		ai:       ai,
		vectors:  vectors,
		metrics:  metrics,
		logger:   logger.Named("orchestrator"),
	}
}

// StreamRecommendations runs the tier pipeline for one request. Callbacks
// fire in increasing tier order, each at most once; a failing tier logs and
// falls through to the next. Collaborator errors never escape.
func (o *Orchestrator) StreamRecommendations(ctx context.Context, req inbound.RecommendationRequest, cb inbound.TierCallbacks) {
	if req.Count <= 0 {
		req.Count = tier1Cap
	}
	start := time.Now()
	served := make(map[string]bool)

	// Tier 1: pre-warm buffer then cache pad, capped at tier1Cap.
	tier1 := o.assembleTier1(ctx, req, served)
	if len(tier1) > 0 {
		o.recordFirstDish(time.Since(start), req.Profile)
		o.recordTier(1, time.Since(start), len(tier1))
		if cb.OnTier1 != nil {
			cb.OnTier1(tier1)
		}
	}

	// Tier 2: persona/vector personalization, deduplicated against tier 1.
	// The combined emission stays within the originally requested count.
	tier2Start := time.Now()
	tier2 := o.assembleTier2(ctx, req, served, req.Count-len(tier1))
	if len(tier2) > 0 {
		if len(tier1) == 0 {
			o.recordFirstDish(time.Since(start), req.Profile)
		}
		o.recordTier(2, time.Since(tier2Start), len(tier2))
		if cb.OnTier2 != nil {
			cb.OnTier2(tier2)
		}
	}

	// Tier 3 stays with the caller: the orchestrator only signals readiness.
	if cb.OnTier3Ready != nil {
		cb.OnTier3Ready()
	}
}

// FilterUnseenDishes implements the inbound port.
func (o *Orchestrator) FilterUnseenDishes(dishes []*dish.Dish, shown []string) []*dish.Dish {
	return FilterUnseenDishes(dishes, shown)
}

func (o *Orchestrator) assembleTier1(ctx context.Context, req inbound.RecommendationRequest, served map[string]bool) []*dish.Dish {
	var out []*dish.Dish

	if req.Profile != nil {
		warmed, err := o.buffers.Take(ctx, req.Profile.UserID, tier1Cap)
		if err != nil {
			o.logger.Warn("Pre-warm buffer read failed", zap.Error(err))
		}
		o.recordPreWarm(len(warmed) > 0)
		for _, d := range warmed {
			d.Source = dish.SourcePreWarm
			served[strings.ToLower(d.Name)] = true
			out = append(out, d)
		}
	}

	if len(out) < tier1Cap {
		padded, err := o.cache.TakeRecent(ctx, tier1Cap-len(out), served)
		if err != nil {
			o.logger.Warn("Dish cache read failed", zap.Error(err))
		}
		o.recordCache(len(padded) > 0)
		for _, d := range padded {
			d.Source = dish.SourceCache
			served[strings.ToLower(d.Name)] = true
			out = append(out, d)
		}
	}

	return FilterUnseenDishes(out, req.Shown)
}

func (o *Orchestrator) assembleTier2(ctx context.Context, req inbound.RecommendationRequest, served map[string]bool, limit int) []*dish.Dish {
	if req.Profile == nil || limit <= 0 {
		return nil
	}

	var candidates []*dish.Dish
	if req.Profile.IsNew() {
		candidates = o.personaSamples(ctx, req.Profile)
	} else {
		candidates = o.semanticMatches(ctx, req.Profile, req.Count)
	}

	// Dedupe by exact lowercase name against tier 1 and earlier tier-2 picks.
	// Near-duplicate names are a known limitation of name-based dedupe.
	var out []*dish.Dish
	for _, d := range candidates {
		key := strings.ToLower(d.Name)
		if served[key] {
			continue
		}
		served[key] = true
		out = append(out, d)
		if len(out) >= limit {
			break
		}
	}
	return FilterUnseenDishes(out, req.Shown)
}

// personaSamples resolves the assigned persona's sample dish names through
// top-1 vector lookups, keeping only hits carrying a name and description.
func (o *Orchestrator) personaSamples(ctx context.Context, p *profile.UserProfile) []*dish.Dish {
	assigned := o.personas.Assign(p)
	tpl := o.personas.Lookup(assigned)
	if tpl == nil {
		return nil
	}

	var out []*dish.Dish
	for _, name := range tpl.SampleDishes {
		embedding, err := o.ai.GenerateEmbedding(ctx, name)
		if err != nil || len(embedding) == 0 {
			o.recordVector(false)
			continue
		}
		matches, err := o.vectors.Search(ctx, embedding, DishVectorNamespace, 1)
		if err != nil || len(matches) == 0 {
			o.recordVector(false)
			continue
		}
		o.recordVector(true)
		if d := dishFromMetadata(matches[0].Metadata); d != nil {
			d.Source = dish.SourcePersona
			out = append(out, d)
		}
	}
	return out
}

// semanticMatches runs one profile-derived semantic search for returning
// users, keeping only matches above the similarity floor.
func (o *Orchestrator) semanticMatches(ctx context.Context, p *profile.UserProfile, topK int) []*dish.Dish {
	query := strings.TrimSpace(strings.Join(p.Cuisines, " ") + " " + string(p.DietaryPreference) + " dishes")
	embedding, err := o.ai.GenerateEmbedding(ctx, query)
	if err != nil || len(embedding) == 0 {
		o.recordVector(false)
		o.logger.Warn("Tier 2 query embedding failed", zap.Error(err))
		return nil
	}

	matches, err := o.vectors.Search(ctx, embedding, DishVectorNamespace, topK)
	if err != nil {
		o.recordVector(false)
		o.logger.Warn("Tier 2 vector search failed", zap.Error(err))
		return nil
	}
	o.recordVector(len(matches) > 0)

	var out []*dish.Dish
	for _, m := range matches {
		if m.Score <= tier2MinScore {
			continue
		}
		if d := dishFromMetadata(m.Metadata); d != nil {
			d.Source = dish.SourceVector
			out = append(out, d)
		}
	}
	return out
}

// dishFromMetadata rebuilds a lightweight dish from vector-store metadata.
// Hits without both a name and a description are dropped.
func dishFromMetadata(meta map[string]string) *dish.Dish {
	if meta == nil || meta["name"] == "" || meta["description"] == "" {
		return nil
	}
	return &dish.Dish{
		Name:        meta["name"],
		Description: meta["description"],
		Cuisine:     meta["cuisine"],
		Slot:        dish.MealSlot(meta["slot"]),
	}
}

func (o *Orchestrator) recordTier(tier int, d time.Duration, served int) {
	if o.metrics != nil {
		o.metrics.RecordTier(tier, d, served)
	}
}

func (o *Orchestrator) recordFirstDish(latency time.Duration, p *profile.UserProfile) {
	if o.metrics != nil {
		o.metrics.RecordFirstDish(latency, p != nil && p.IsNew())
	}
}

func (o *Orchestrator) recordCache(hit bool) {
	if o.metrics != nil {
		o.metrics.RecordCacheLookup(hit)
	}
}

func (o *Orchestrator) recordVector(hit bool) {
	if o.metrics != nil {
		o.metrics.RecordVectorLookup(hit)
	}
}

func (o *Orchestrator) recordPreWarm(hit bool) {
	if o.metrics != nil {
		o.metrics.RecordPreWarmLookup(hit)
	}
}
