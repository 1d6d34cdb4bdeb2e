package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/inbound"
	apperrors "github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// respondError renders a structured error with its mapped status code.
func respondError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.StatusCode(), gin.H{"error": err})
}

// recommendRequest is the JSON body for both the aggregate and the streaming
// recommendation endpoints.
type recommendRequest struct {
	Profile *profile.UserProfile `json:"profile" binding:"required"`
	Count   int                  `json:"count"`
	Shown   []string             `json:"shown"`
}

// tierPayload is one tier's slice in the response.
type tierPayload struct {
	Tier   int          `json:"tier"`
	Dishes []*dish.Dish `json:"dishes"`
}

// handleRecommend runs the full pipeline synchronously and returns all tiers
// in one response. Tier 3 generation runs inline when the orchestrator
// signals readiness; its failure degrades to whatever the earlier tiers
// produced.
func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	if req.Count <= 0 {
		req.Count = s.cfg.Pipeline.DefaultCount
	}

	var tiers []tierPayload
	shown := append([]string(nil), req.Shown...)

	collect := func(tier int) func([]*dish.Dish) {
		return func(dishes []*dish.Dish) {
			tiers = append(tiers, tierPayload{Tier: tier, Dishes: dishes})
			for _, d := range dishes {
				shown = append(shown, d.Name)
			}
		}
	}

	s.orchestrator.StreamRecommendations(c.Request.Context(), inbound.RecommendationRequest{
		Profile: req.Profile,
		Count:   req.Count,
		Shown:   req.Shown,
	}, inbound.TierCallbacks{
		OnTier1: collect(1),
		OnTier2: collect(2),
		OnTier3Ready: func() {
			generated, err := s.generator.Generate(c.Request.Context(), req.Profile, req.Count, shown)
			if err != nil {
				s.logger.Warn("Tier 3 generation failed", zap.Error(err))
				return
			}
			if len(generated) > 0 {
				tiers = append(tiers, tierPayload{Tier: 3, Dishes: generated})
			}
		},
	})

	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}

// handleIngredient looks up one knowledge graph node.
func (s *Server) handleIngredient(c *gin.Context) {
	node := s.graph.GetIngredient(c.Param("name"))
	if node == nil {
		respondError(c, apperrors.NewAppError(apperrors.CodeIngredientNotFound, "Unknown ingredient", c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, node)
}

// handleMetricsReport returns the aggregated latency report.
func (s *Server) handleMetricsReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.GetReport())
}

// handleMetricsReset clears the latency aggregator.
func (s *Server) handleMetricsReset(c *gin.Context) {
	s.tracker.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     s.cfg.App.Name,
		"version":     s.cfg.App.Version,
		"graph_size":  s.graph.Size(),
		"environment": s.cfg.App.Environment,
	})
}
