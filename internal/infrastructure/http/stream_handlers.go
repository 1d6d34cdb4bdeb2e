package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is same-origin behind the app gateway.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFrame is one WebSocket message. Tier frames carry dishes; the final
// frame has Done set and no dishes.
type streamFrame struct {
	Tier   int          `json:"tier,omitempty"`
	Dishes []*dish.Dish `json:"dishes,omitempty"`
	Done   bool         `json:"done,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// handleStream upgrades to WebSocket and emits one frame per tier as the
// pipeline produces them, so the client renders tier 1 while tier 3 is still
// generating.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req recommendRequest
	if err := conn.ReadJSON(&req); err != nil || req.Profile == nil {
		_ = conn.WriteJSON(streamFrame{Error: "first message must carry a profile"})
		return
	}
	if req.Count <= 0 {
		req.Count = s.cfg.Pipeline.DefaultCount
	}

	send := func(frame streamFrame) {
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Debug("WebSocket write failed", zap.Error(err))
		}
	}

	shown := append([]string(nil), req.Shown...)
	emit := func(tier int) func([]*dish.Dish) {
		return func(dishes []*dish.Dish) {
			send(streamFrame{Tier: tier, Dishes: dishes})
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
		OnTier1: emit(1),
		OnTier2: emit(2),
		OnTier3Ready: func() {
			generated, err := s.generator.Generate(c.Request.Context(), req.Profile, req.Count, shown)
			if err != nil {
				send(streamFrame{Tier: 3, Error: "generation unavailable"})
				return
			}
			if len(generated) > 0 {
				send(streamFrame{Tier: 3, Dishes: generated})
			}
		},
	})

	send(streamFrame{Done: true})
}
