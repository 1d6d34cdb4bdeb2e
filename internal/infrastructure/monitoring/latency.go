// Package monitoring provides the operational metrics surface: the bounded
// in-process latency aggregator backing the report endpoint and the
// Prometheus collector mirroring it for scraping.
package monitoring

import (
	"sync"
	"time"
)

// EventKind classifies a recorded pipeline event.
type EventKind string

const (
	EventTier       EventKind = "tier"
	EventGeneration EventKind = "generation"
	EventFirstDish  EventKind = "first_dish"
)

// Event is one entry of the bounded event log.
type Event struct {
	Kind      EventKind     `json:"kind"`
	Tier      int           `json:"tier,omitempty"`
	Duration  time.Duration `json:"duration"`
	Served    int           `json:"served,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// maxEvents bounds the event log; the oldest entry is evicted first.
const maxEvents = 1000

// tally is a hit/miss counter pair.
type tally struct {
	Hits   int64
	Misses int64
}

func (t tally) rate() float64 {
	total := t.Hits + t.Misses
	if total == 0 {
		return 0
	}
	return float64(t.Hits) / float64(total) * 100
}

// tierStats accumulates per-tier duration and count.
type tierStats struct {
	Total time.Duration
	Count int64
}

// LatencyTracker aggregates pipeline timings and hit rates. It implements
// the orchestrator's MetricsRecorder and is safe for concurrent use.
type LatencyTracker struct {
	mu sync.Mutex

	events []Event

	cache   tally
	vector  tally
	prewarm tally

	tiers map[int]*tierStats

	firstDishTotal    time.Duration
	firstDishCount    int64
	newUserFirstTotal time.Duration
	newUserFirstCount int64
}

// NewLatencyTracker creates an empty tracker.
func NewLatencyTracker() *LatencyTracker {
	return &LatencyTracker{tiers: make(map[int]*tierStats)}
}

// RecordTier logs one tier emission.
func (t *LatencyTracker) RecordTier(tier int, duration time.Duration, served int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.tiers[tier]
	if !ok {
		stats = &tierStats{}
		t.tiers[tier] = stats
	}
	stats.Total += duration
	stats.Count++

	t.appendEvent(Event{Kind: EventTier, Tier: tier, Duration: duration, Served: served, Timestamp: time.Now()})
}

// RecordGeneration logs one full tier-3 generation round trip.
func (t *LatencyTracker) RecordGeneration(duration time.Duration, served int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendEvent(Event{Kind: EventGeneration, Duration: duration, Served: served, Timestamp: time.Now()})
}

// RecordFirstDish logs the latency until the user saw their first dish.
func (t *LatencyTracker) RecordFirstDish(latency time.Duration, newUser bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.firstDishTotal += latency
	t.firstDishCount++
	if newUser {
		t.newUserFirstTotal += latency
		t.newUserFirstCount++
	}
	t.appendEvent(Event{Kind: EventFirstDish, Duration: latency, Timestamp: time.Now()})
}

// RecordCacheLookup tallies a generated-dish cache lookup.
func (t *LatencyTracker) RecordCacheLookup(hit bool) { t.record(&t.cache, hit) }

// RecordVectorLookup tallies a vector search.
func (t *LatencyTracker) RecordVectorLookup(hit bool) { t.record(&t.vector, hit) }

// RecordPreWarmLookup tallies a pre-warm buffer read.
func (t *LatencyTracker) RecordPreWarmLookup(hit bool) { t.record(&t.prewarm, hit) }

func (t *LatencyTracker) record(counter *tally, hit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if hit {
		counter.Hits++
	} else {
		counter.Misses++
	}
}

// appendEvent assumes the caller holds the lock.
func (t *LatencyTracker) appendEvent(e Event) {
	if len(t.events) >= maxEvents {
		t.events = t.events[1:]
	}
	t.events = append(t.events, e)
}

// TierReport is the per-tier section of the report.
type TierReport struct {
	AverageLatencyMS float64 `json:"average_latency_ms"`
	Count            int64   `json:"count"`
}

// Report is the computed operational snapshot. All rates are percentages and
// all divisions guard a zero denominator.
type Report struct {
	AvgTimeToFirstDishMS        float64            `json:"avg_time_to_first_dish_ms"`
	AvgNewUserTimeToFirstDishMS float64            `json:"avg_new_user_time_to_first_dish_ms"`
	AvgGenerationTimeMS         float64            `json:"avg_generation_time_ms"`
	CacheHitRate                float64            `json:"cache_hit_rate"`
	VectorHitRate               float64            `json:"vector_hit_rate"`
	PreWarmHitRate              float64            `json:"prewarm_hit_rate"`
	Tiers                       map[int]TierReport `json:"tiers"`
	EventCount                  int                `json:"event_count"`
}

// GetReport computes the current snapshot.
func (t *LatencyTracker) GetReport() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := Report{
		CacheHitRate:   t.cache.rate(),
		VectorHitRate:  t.vector.rate(),
		PreWarmHitRate: t.prewarm.rate(),
		Tiers:          make(map[int]TierReport, len(t.tiers)),
		EventCount:     len(t.events),
	}

	if t.firstDishCount > 0 {
		report.AvgTimeToFirstDishMS = float64(t.firstDishTotal.Milliseconds()) / float64(t.firstDishCount)
	}
	if t.newUserFirstCount > 0 {
		report.AvgNewUserTimeToFirstDishMS = float64(t.newUserFirstTotal.Milliseconds()) / float64(t.newUserFirstCount)
	}

	var genTotal time.Duration
	var genCount int64
	for _, e := range t.events {
		if e.Kind == EventGeneration {
			genTotal += e.Duration
			genCount++
		}
	}
	if genCount > 0 {
		report.AvgGenerationTimeMS = float64(genTotal.Milliseconds()) / float64(genCount)
	}

	for tier, stats := range t.tiers {
		entry := TierReport{Count: stats.Count}
		if stats.Count > 0 {
			entry.AverageLatencyMS = float64(stats.Total.Milliseconds()) / float64(stats.Count)
		}
		report.Tiers[tier] = entry
	}

	return report
}

// Events returns a copy of the bounded event log, oldest first.
func (t *LatencyTracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Reset zeroes all counters and clears the event log.
func (t *LatencyTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
	t.cache = tally{}
	t.vector = tally{}
	t.prewarm = tally{}
	t.tiers = make(map[int]*tierStats)
	t.firstDishTotal = 0
	t.firstDishCount = 0
	t.newUserFirstTotal = 0
	t.newUserFirstCount = 0
}
