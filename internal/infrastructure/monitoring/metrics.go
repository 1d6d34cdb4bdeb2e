package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector exports pipeline metrics to Prometheus. It mirrors the latency
// tracker so the same observations feed both the in-process report and the
// scrape endpoint.
type Collector struct {
	logger *zap.Logger

	tierDuration *prometheus.HistogramVec
	tierServed   *prometheus.CounterVec
	firstDish    prometheus.Histogram
	lookups      *prometheus.CounterVec
	aiRequests   *prometheus.CounterVec
	aiDuration   prometheus.Histogram
	graphSize    prometheus.Gauge
	prewarmRuns  *prometheus.CounterVec
}

// NewCollector registers the pipeline metrics on the default registry.
func NewCollector(logger *zap.Logger) *Collector {
	return &Collector{
		logger: logger.Named("metrics"),

		tierDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recommendation_tier_duration_seconds",
				Help:    "Latency of each recommendation tier",
				Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"tier"},
		),
		tierServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_dishes_served_total",
				Help: "Dishes served per tier",
			},
			[]string{"tier"},
		),
		firstDish: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recommendation_first_dish_seconds",
				Help:    "Time until the first dish reached the user",
				Buckets: []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
			},
		),
		lookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_lookups_total",
				Help: "Cache, vector, and pre-warm lookups by outcome",
			},
			[]string{"source", "outcome"},
		),
		aiRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "LLM collaborator calls by operation and status",
			},
			[]string{"operation", "status"},
		),
		aiDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "LLM collaborator call duration",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),
		graphSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "knowledge_graph_ingredients",
				Help: "Current ingredient node count",
			},
		),
		prewarmRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prewarm_runs_total",
				Help: "Pre-warm buffer builds by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordTier implements the orchestrator recorder.
func (c *Collector) RecordTier(tier int, duration time.Duration, served int) {
	label := strconv.Itoa(tier)
	c.tierDuration.WithLabelValues(label).Observe(duration.Seconds())
	c.tierServed.WithLabelValues(label).Add(float64(served))
}

// RecordFirstDish implements the orchestrator recorder.
func (c *Collector) RecordFirstDish(latency time.Duration, newUser bool) {
	c.firstDish.Observe(latency.Seconds())
}

// RecordCacheLookup implements the orchestrator recorder.
func (c *Collector) RecordCacheLookup(hit bool) { c.recordLookup("cache", hit) }

// RecordVectorLookup implements the orchestrator recorder.
func (c *Collector) RecordVectorLookup(hit bool) { c.recordLookup("vector", hit) }

// RecordPreWarmLookup implements the orchestrator recorder.
func (c *Collector) RecordPreWarmLookup(hit bool) { c.recordLookup("prewarm", hit) }

func (c *Collector) recordLookup(source string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	c.lookups.WithLabelValues(source, outcome).Inc()
}

// RecordAIRequest tallies one LLM collaborator call.
func (c *Collector) RecordAIRequest(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.aiRequests.WithLabelValues(operation, status).Inc()
	c.aiDuration.Observe(duration.Seconds())
}

// SetGraphSize updates the ingredient node gauge.
func (c *Collector) SetGraphSize(n int) {
	c.graphSize.Set(float64(n))
}

// RecordPreWarmRun tallies a pre-warm build.
func (c *Collector) RecordPreWarmRun(failed bool) {
	outcome := "complete"
	if failed {
		outcome = "failed"
	}
	c.prewarmRuns.WithLabelValues(outcome).Inc()
}

// Recorder fans pipeline observations out to the in-process tracker and the
// Prometheus collector.
type Recorder struct {
	Tracker   *LatencyTracker
	Collector *Collector
}

// NewRecorder wires a tracker and collector together.
func NewRecorder(tracker *LatencyTracker, collector *Collector) *Recorder {
	return &Recorder{Tracker: tracker, Collector: collector}
}

func (r *Recorder) RecordTier(tier int, duration time.Duration, served int) {
	r.Tracker.RecordTier(tier, duration, served)
	r.Collector.RecordTier(tier, duration, served)
}

func (r *Recorder) RecordFirstDish(latency time.Duration, newUser bool) {
	r.Tracker.RecordFirstDish(latency, newUser)
	r.Collector.RecordFirstDish(latency, newUser)
}

func (r *Recorder) RecordCacheLookup(hit bool) {
	r.Tracker.RecordCacheLookup(hit)
	r.Collector.RecordCacheLookup(hit)
}

func (r *Recorder) RecordVectorLookup(hit bool) {
	r.Tracker.RecordVectorLookup(hit)
	r.Collector.RecordVectorLookup(hit)
}

func (r *Recorder) RecordPreWarmLookup(hit bool) {
	r.Tracker.RecordPreWarmLookup(hit)
	r.Collector.RecordPreWarmLookup(hit)
}
