package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/memory"
	"github.com/mealforge/v1/internal/domain/profile"
	apperrors "github.com/mealforge/v1/pkg/errors"
)

type onboardRequest struct {
	Profile *profile.UserProfile `json:"profile" binding:"required"`
}

// handleOnboard initializes a new user: persona assignment with vector
// seeding, a fresh session, and a background pre-warm run so the first
// recommendation request finds a warm buffer.
func (s *Server) handleOnboard(c *gin.Context) {
	var req onboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}
	if req.Profile.UserID == "" {
		req.Profile.UserID = uuid.NewString()
	}

	userID := req.Profile.UserID
	assigned, ok := s.personas.InitializeNewUser(c.Request.Context(), userID, req.Profile)
	s.contexts.InitSession(c.Request.Context(), userID)

	// Detached from the request context: the warm run outlives the response.
	s.prewarmer.WarmAsync(context.Background(), userID, req.Profile)

	c.JSON(http.StatusOK, gin.H{
		"user_id":        userID,
		"persona":        assigned,
		"vector_seeded":  ok,
		"prewarm_status": s.prewarmer.Status(userID),
	})
}

// handlePreWarmStatus reports the buffer build state for a user.
func (s *Server) handlePreWarmStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.Param("userId"),
		"status":  s.prewarmer.Status(c.Param("userId")),
	})
}

type sessionEventRequest struct {
	UserID string       `json:"user_id" binding:"required"`
	Event  memory.Event `json:"event" binding:"required"`
}

// handleSessionEvent appends one event to the user's active session.
func (s *Server) handleSessionEvent(c *gin.Context) {
	var req sessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	s.contexts.RecordEvent(req.UserID, req.Event)
	c.JSON(http.StatusOK, gin.H{
		"user_id":        req.UserID,
		"state":          s.contexts.SessionState(req.UserID),
		"token_estimate": s.contexts.TokenEstimate(req.UserID),
	})
}

// handleCondense triggers session condensation. Condensation failures keep
// the session active, so the response always reflects the resulting state.
func (s *Server) handleCondense(c *gin.Context) {
	userID := c.Param("userId")
	s.contexts.CondenseSession(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"state":   s.contexts.SessionState(userID),
	})
}

// handleSessionInfo reports session state, token estimate, and any condensed
// summary for a user.
func (s *Server) handleSessionInfo(c *gin.Context) {
	userID := c.Param("userId")
	resp := gin.H{
		"user_id":        userID,
		"state":          s.contexts.SessionState(userID),
		"token_estimate": s.contexts.TokenEstimate(userID),
	}
	if cond := s.contexts.Condensed(userID); cond != nil {
		resp["condensed"] = cond
	}
	c.JSON(http.StatusOK, resp)
}
