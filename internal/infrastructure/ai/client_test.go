package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chatServer returns an httptest server that answers every chat completion
// with the given message content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		Model:   "test-model",
	}, nil, zap.NewNop())
}

const validDishJSON = `{
	"dishes": [{
		"name": "Chana Masala",
		"description": "Chickpeas simmered in a spiced tomato and onion gravy.",
		"cuisine": "Indian",
		"slot": "dinner",
		"ingredients": [
			{"name": "chickpeas", "category": "protein", "quantity": "2 cups"},
			{"name": "tomato", "category": "produce", "quantity": "3"}
		],
		"macros": {"calories": 420, "protein": 18, "carbs": 55, "fat": 12},
		"tags": ["vegan"],
		"health_tags": ["high-fiber"]
	}]
}`

func TestGenerateDishes(t *testing.T) {
	srv := chatServer(t, validDishJSON)
	defer srv.Close()
	c := newTestClient(srv.URL)

	dishes, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{Count: 1})

	require.NoError(t, err)
	require.Len(t, dishes, 1)
	d := dishes[0]
	assert.Equal(t, "Chana Masala", d.Name)
	assert.Equal(t, "Indian", d.Cuisine)
	assert.Equal(t, dish.SlotDinner, d.Slot)
	assert.Equal(t, dish.SourceGenerated, d.Source)
	require.Len(t, d.Ingredients, 2)
	assert.Equal(t, "chickpeas", d.Ingredients[0].Name)
	require.NotNil(t, d.Macros)
	assert.Equal(t, 420.0, d.Macros.Calories)
}

func TestGenerateDishesStripsCodeFences(t *testing.T) {
	srv := chatServer(t, "```json\n"+validDishJSON+"\n```")
	defer srv.Close()
	c := newTestClient(srv.URL)

	dishes, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{})

	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Chana Masala", dishes[0].Name)
}

func TestGenerateDishesSchemaMismatch(t *testing.T) {
	// Description shorter than the schema minimum.
	srv := chatServer(t, `{"dishes":[{"name":"X","description":"too short","cuisine":"Indian","ingredients":[{"name":"rice"}]}]}`)
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{})

	require.Error(t, err)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "generate_dishes", genErr.Operation)
}

func TestGenerateDishesEmptyList(t *testing.T) {
	srv := chatServer(t, `{"dishes":[]}`)
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{})
	assert.Error(t, err, "an empty dish list fails schema validation")
}

func TestGenerateDishesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, genErr.Error(), "503")
}

func TestSummarizeSession(t *testing.T) {
	srv := chatServer(t, `{"summary":"Prefers spicy vegetarian curries.","cuisine_affinities":{"indian":0.9},"avoid_patterns":["seafood"]}`)
	defer srv.Close()
	c := newTestClient(srv.URL)

	summary, err := c.SummarizeSession(context.Background(), "Liked dishes: Chana Masala")

	require.NoError(t, err)
	assert.Equal(t, "Prefers spicy vegetarian curries.", summary.Summary)
	assert.InDelta(t, 0.9, summary.CuisineAffinities["indian"], 0.001)
	assert.Equal(t, []string{"seafood"}, summary.AvoidPatterns)
}

func TestSummarizeSessionMissingSummaryFails(t *testing.T) {
	srv := chatServer(t, `{"cuisine_affinities":{"indian":0.9}}`)
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.SummarizeSession(context.Background(), "digest")
	assert.Error(t, err)
}

func TestGenerateEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		resp := map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)

	embedding, err := c.GenerateEmbedding(context.Background(), "Palak Paneer")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
}

func TestGenerateEmbeddingEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}}))
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.GenerateEmbedding(context.Background(), "text")
	assert.Error(t, err)
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": validDishJSON}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key"}, nil, zap.NewNop())
	_, err := c.GenerateDishes(context.Background(), outbound.DishConstraints{})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "surrounding whitespace", input: "  {\"a\":1}  ", expected: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripFences(tt.input))
		})
	}
}
