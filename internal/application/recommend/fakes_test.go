package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/ports/outbound"
)

type fakeBuffers struct {
	dishes  map[string][]*dish.Dish
	takeErr error
	puts    map[string][]*dish.Dish
}

func newFakeBuffers() *fakeBuffers {
	return &fakeBuffers{
		dishes: make(map[string][]*dish.Dish),
		puts:   make(map[string][]*dish.Dish),
	}
}

func (f *fakeBuffers) Put(ctx context.Context, userID string, dishes []*dish.Dish) error {
	f.puts[userID] = dishes
	f.dishes[userID] = append([]*dish.Dish(nil), dishes...)
	return nil
}

func (f *fakeBuffers) Take(ctx context.Context, userID string, limit int) ([]*dish.Dish, error) {
	if f.takeErr != nil {
		return nil, f.takeErr
	}
	buf := f.dishes[userID]
	if limit > len(buf) {
		limit = len(buf)
	}
	taken := buf[:limit]
	f.dishes[userID] = buf[limit:]
	return taken, nil
}

func (f *fakeBuffers) Size(ctx context.Context, userID string) (int, error) {
	return len(f.dishes[userID]), nil
}

type fakeCache struct {
	dishes  []*dish.Dish
	takeErr error
	added   []*dish.Dish
}

func (f *fakeCache) TakeRecent(ctx context.Context, limit int, exclude map[string]bool) ([]*dish.Dish, error) {
	if f.takeErr != nil {
		return nil, f.takeErr
	}
	var out []*dish.Dish
	for _, d := range f.dishes {
		if len(out) >= limit {
			break
		}
		if exclude[strings.ToLower(d.Name)] {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeCache) Add(ctx context.Context, d *dish.Dish) error {
	f.added = append(f.added, d)
	return nil
}

type fakeAI struct {
	dishes     []*dish.Dish
	dishErr    error
	lastConstr outbound.DishConstraints

	embedding []float32
	embedErr  error

	summary    *outbound.SessionSummary
	summaryErr error
}

func (f *fakeAI) GenerateDishes(ctx context.Context, c outbound.DishConstraints) ([]*dish.Dish, error) {
	f.lastConstr = c
	return f.dishes, f.dishErr
}

func (f *fakeAI) SummarizeSession(ctx context.Context, digest string) (*outbound.SessionSummary, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	if f.summary != nil {
		return f.summary, nil
	}
	return nil, errors.New("no summary configured")
}

func (f *fakeAI) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if f.embedding != nil {
		return f.embedding, nil
	}
	return []float32{1, 0}, nil
}

type fakeVectors struct {
	// results are returned one slice per Search call, in order; the last
	// entry repeats once exhausted.
	results   [][]outbound.VectorMatch
	calls     int
	searchErr error
	upserts   map[string][]outbound.VectorRecord
}

func newFakeVectors(results ...[]outbound.VectorMatch) *fakeVectors {
	return &fakeVectors{
		results: results,
		upserts: make(map[string][]outbound.VectorRecord),
	}
}

func (f *fakeVectors) Upsert(ctx context.Context, records []outbound.VectorRecord, namespace string) error {
	f.upserts[namespace] = append(f.upserts[namespace], records...)
	return nil
}

func (f *fakeVectors) Search(ctx context.Context, query []float32, namespace string, topK int) ([]outbound.VectorMatch, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	idx := f.calls
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	f.calls++
	return f.results[idx], nil
}

type fakeMetrics struct {
	tiers       map[int]int
	firstDishes int
	generations int
	cacheHits   int
	cacheMisses int
	vectorHits  int
	prewarmHits int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{tiers: make(map[int]int)}
}

func (f *fakeMetrics) RecordTier(tier int, d time.Duration, served int) { f.tiers[tier]++ }

func (f *fakeMetrics) RecordCacheLookup(hit bool) {
	if hit {
		f.cacheHits++
	} else {
		f.cacheMisses++
	}
}

func (f *fakeMetrics) RecordVectorLookup(hit bool) {
	if hit {
		f.vectorHits++
	}
}

func (f *fakeMetrics) RecordPreWarmLookup(hit bool) {
	if hit {
		f.prewarmHits++
	}
}

func (f *fakeMetrics) RecordFirstDish(latency time.Duration, newUser bool) { f.firstDishes++ }

func (f *fakeMetrics) RecordGeneration(d time.Duration, served int) { f.generations++ }
