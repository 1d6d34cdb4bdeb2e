// Package ai implements the LLM collaborator port over a chat-completions
// style HTTP API. Responses are parsed into typed structs and validated on
// receipt; anything that fails the schema comes back as a GenerationError.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// GenerationError marks a collaborator response that could not be used:
// transport failure, non-2xx status, or schema mismatch.
type GenerationError struct {
	Operation string
	Cause     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Operation, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// Config holds the client's connection settings.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbeddingModel string
	EmbeddingDim   int
	Timeout        time.Duration
}

// Client implements outbound.AIService.
type Client struct {
	cfg      Config
	http     *http.Client
	validate *validator.Validate
	metrics  *monitoring.Collector
	logger   *zap.Logger
}

// NewClient creates the HTTP client. A nil metrics collector disables
// per-call recording.
func NewClient(cfg Config, metrics *monitoring.Collector, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = 768
	}

	logger = logger.Named("ai-client")
	logger.Info("AI client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Chat API structures.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// generatedDish is the expected shape of one generated dish. Validation on
// receipt replaces trusting the model's output implicitly.
type generatedDish struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required,min=20"`
	Cuisine     string   `json:"cuisine" validate:"required"`
	Slot        string   `json:"slot"`
	Ingredients []struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category"`
		Quantity string `json:"quantity"`
	} `json:"ingredients" validate:"required,min=1,dive"`
	Macros struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
		Fiber    float64 `json:"fiber"`
	} `json:"macros"`
	Tags       []string `json:"tags"`
	HealthTags []string `json:"health_tags"`
}

type generatedDishList struct {
	Dishes []generatedDish `json:"dishes" validate:"required,min=1,dive"`
}

// GenerateDishes implements outbound.AIService.
func (c *Client) GenerateDishes(ctx context.Context, constraints outbound.DishConstraints) ([]*dish.Dish, error) {
	start := time.Now()
	var list generatedDishList
	err := c.chatJSON(ctx, "generate_dishes", dishPrompt(constraints), &list)
	c.recordAI("generate_dishes", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out := make([]*dish.Dish, 0, len(list.Dishes))
	for i := range list.Dishes {
		out = append(out, toDish(&list.Dishes[i]))
	}
	return out, nil
}

// SummarizeSession implements outbound.AIService.
func (c *Client) SummarizeSession(ctx context.Context, digest string) (*outbound.SessionSummary, error) {
	start := time.Now()
	var summary outbound.SessionSummary
	err := c.chatJSON(ctx, "summarize_session", summaryPrompt(digest), &summary)
	c.recordAI("summarize_session", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GenerateEmbedding implements outbound.AIService.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	embedding, err := c.embed(ctx, text)
	c.recordAI("embedding", time.Since(start), err)
	return embedding, err
}

// chatJSON runs one JSON-mode chat completion and decodes + validates the
// result into out.
func (c *Client) chatJSON(ctx context.Context, operation, prompt string, out interface{}) error {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a culinary assistant. Respond with a single JSON object and nothing else."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	raw, err := c.post(ctx, "/v1/chat/completions", reqBody)
	if err != nil {
		return &GenerationError{Operation: operation, Cause: err}
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &GenerationError{Operation: operation, Cause: err}
	}
	if len(resp.Choices) == 0 {
		return &GenerationError{Operation: operation, Cause: fmt.Errorf("empty choices")}
	}

	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &GenerationError{Operation: operation, Cause: fmt.Errorf("decode: %w", err)}
	}
	if err := c.validate.Struct(out); err != nil {
		return &GenerationError{Operation: operation, Cause: fmt.Errorf("schema: %w", err)}
	}
	return nil
}

func (c *Client) embed(ctx context.Context, text string) ([]float32, error) {
	raw, err := c.post(ctx, "/v1/embeddings", embeddingRequest{
		Model: c.cfg.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, &GenerationError{Operation: "embedding", Cause: err}
	}

	var resp embeddingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &GenerationError{Operation: "embedding", Cause: err}
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &GenerationError{Operation: "embedding", Cause: fmt.Errorf("empty embedding")}
	}
	return resp.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return raw, nil
}

func (c *Client) recordAI(operation string, d time.Duration, err error) {
	if c.metrics != nil {
		c.metrics.RecordAIRequest(operation, d, err)
	}
	if err != nil {
		c.logger.Warn("AI call failed", zap.String("operation", operation), zap.Error(err))
	}
}

func toDish(g *generatedDish) *dish.Dish {
	d := &dish.Dish{
		Name:        g.Name,
		Description: g.Description,
		Cuisine:     g.Cuisine,
		Slot:        dish.MealSlot(g.Slot),
		Tags:        g.Tags,
		HealthTags:  g.HealthTags,
		Source:      dish.SourceGenerated,
		Macros: &dish.Macros{
			Calories: g.Macros.Calories,
			Protein:  g.Macros.Protein,
			Carbs:    g.Macros.Carbs,
			Fat:      g.Macros.Fat,
			Fiber:    g.Macros.Fiber,
		},
	}
	for _, ing := range g.Ingredients {
		d.Ingredients = append(d.Ingredients, dish.Ingredient{
			Name:     ing.Name,
			Category: ingredientCategory(ing.Category),
			Quantity: ing.Quantity,
		})
	}
	return d
}

// stripFences removes a leading/trailing markdown code fence, a common
// model formatting slip even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
