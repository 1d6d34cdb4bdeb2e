package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mealforge/v1/internal/application/knowledge"
	memoryapp "github.com/mealforge/v1/internal/application/memory"
	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/application/recommend"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/infrastructure/cache"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	memstore "github.com/mealforge/v1/internal/infrastructure/persistence/memory"
	"github.com/mealforge/v1/internal/infrastructure/vector"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAI struct {
	dishes  []*dish.Dish
	dishErr error
	summary *outbound.SessionSummary
}

func (s *stubAI) GenerateDishes(ctx context.Context, c outbound.DishConstraints) ([]*dish.Dish, error) {
	return s.dishes, s.dishErr
}

func (s *stubAI) SummarizeSession(ctx context.Context, digest string) (*outbound.SessionSummary, error) {
	if s.summary == nil {
		return nil, errors.New("no summary configured")
	}
	return s.summary, nil
}

func (s *stubAI) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newTestServer(t *testing.T, ai outbound.AIService) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "Mealforge"
	cfg.App.Version = "test"
	cfg.App.Environment = "production"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Monitoring.Enabled = true
	cfg.Monitoring.MetricsPath = "/metrics"

	logger := zap.NewNop()
	graph := knowledge.NewService(nil, nil, nil, logger)
	vectors := vector.NewIndex()
	personas := personaapp.NewService(nil, ai, vectors, logger)
	contexts := memoryapp.NewService(memstore.NewKeyValueStore(), ai, vectors, logger)
	buffers := memstore.NewDishBufferStore()
	dishes := cache.NewDishCache(16)
	tracker := monitoring.NewLatencyTracker()

	orchestrator := recommend.NewOrchestrator(buffers, dishes, personas, ai, vectors, tracker, logger)
	generator := recommend.NewGenerator(graph, contexts, ai, dishes, vectors, tracker, logger)
	prewarmer := recommend.NewPreWarmer(graph, personas, buffers, logger)

	return NewServer(cfg, logger, orchestrator, generator, prewarmer, personas, contexts, graph, tracker)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	rec := doJSON(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Positive(t, resp["graph_size"])
}

func TestRecommendationsEndpoint(t *testing.T) {
	ai := &stubAI{dishes: []*dish.Dish{
		{
			Name:        "Chana Masala",
			Description: "Chickpeas simmered in a spiced tomato gravy.",
			Cuisine:     "Indian",
			Ingredients: []dish.Ingredient{{Name: "chickpeas"}},
		},
	}}
	s := newTestServer(t, ai)

	body := map[string]interface{}{
		"profile": map[string]interface{}{
			"user_id":            "u1",
			"dietary_preference": "vegetarian",
			"cuisines":           []string{"indian"},
		},
		"count": 3,
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/recommendations", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Tiers []struct {
			Tier   int          `json:"tier"`
			Dishes []*dish.Dish `json:"dishes"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// With cold buffers and cache, generation is the only producing tier.
	require.NotEmpty(t, resp.Tiers)
	last := resp.Tiers[len(resp.Tiers)-1]
	assert.Equal(t, 3, last.Tier)
	require.Len(t, last.Dishes, 1)
	assert.Equal(t, "Chana Masala", last.Dishes[0].Name)
}

func TestRecommendationsValidation(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{"count": 3})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestOnboardEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	body := map[string]interface{}{
		"profile": map[string]interface{}{
			"user_id":            "u1",
			"dietary_preference": "vegetarian",
			"cuisines":           []string{"indian"},
		},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/users/onboard", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp["user_id"])
	assert.Equal(t, "comfort-seeker", resp["persona"])
	assert.Equal(t, true, resp["vector_seeded"])
}

func TestOnboardGeneratesMissingUserID(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	body := map[string]interface{}{
		"profile": map[string]interface{}{"dietary_preference": "vegan"},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/users/onboard", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["user_id"])
}

func TestSessionEventAndCondenseFlow(t *testing.T) {
	ai := &stubAI{summary: &outbound.SessionSummary{
		Summary:       "Prefers vegetarian curries.",
		AvoidPatterns: []string{"seafood"},
	}}
	s := newTestServer(t, ai)

	onboard := map[string]interface{}{
		"profile": map[string]interface{}{"user_id": "u1", "dietary_preference": "vegetarian"},
	}
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/v1/users/onboard", onboard).Code)

	event := map[string]interface{}{
		"user_id": "u1",
		"event":   map[string]interface{}{"type": "like", "dish_name": "Chana Masala"},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/events", event)
	require.Equal(t, http.StatusOK, rec.Code)
	var eventResp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eventResp))
	assert.Equal(t, "active", eventResp["state"])
	assert.Positive(t, eventResp["token_estimate"])

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/u1/condense", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var condenseResp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &condenseResp))
	assert.Equal(t, "condensed", condenseResp["state"])

	rec = doJSON(t, s, http.MethodGet, "/api/v1/sessions/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Prefers vegetarian curries.")
}

func TestIngredientEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/ingredients/paneer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dairy")

	rec = doJSON(t, s, http.MethodGet, "/api/v1/ingredients/durian", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "INGREDIENT_NOT_FOUND")
}

func TestMetricsReportEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	// Produce some pipeline traffic first.
	body := map[string]interface{}{
		"profile": map[string]interface{}{"user_id": "u1"},
	}
	doJSON(t, s, http.MethodPost, "/api/v1/recommendations", body)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/metrics/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report monitoring.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotNil(t, report.Tiers)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/metrics/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPreWarmStatusEndpoint(t *testing.T) {
	s := newTestServer(t, &stubAI{})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/users/u9/prewarm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending")
}
