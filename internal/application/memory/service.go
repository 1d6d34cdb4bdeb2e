// Package memory implements the per-user context manager: short-term session
// event logs, long-term condensed summaries, and the compact prompt-context
// string rendered from both.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mealforge/v1/internal/domain/memory"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// CondensedCollection is the key-value collection for condensed memories.
const CondensedCollection = "condensed_memory"

// contextEventWindow caps how many recent session events feed the prompt.
const contextEventWindow = 10

// ContextMode selects what the rendered context is for.
type ContextMode string

const (
	ModeRecommend ContextMode = "recommend"
	ModeSummarize ContextMode = "summarize"
)

// Service manages session and condensed memory for all users of a process.
// Per-user state is keyed by userID; sessions for different users never
// share mutable state.
type Service struct {
	mu        sync.RWMutex
	sessions  map[string]*memory.Session
	condensed map[string]*memory.Condensed

	store   outbound.KeyValueStore
	ai      outbound.AIService
	vectors outbound.VectorIndex
	logger  *zap.Logger
}

// NewService builds the context manager.
func NewService(store outbound.KeyValueStore, ai outbound.AIService, vectors outbound.VectorIndex, logger *zap.Logger) *Service {
	return &Service{
		sessions:  make(map[string]*memory.Session),
		condensed: make(map[string]*memory.Condensed),
		store:     store,
		ai:        ai,
		vectors:   vectors,
		logger:    logger.Named("context-manager"),
	}
}

// InitSession creates a fresh active session for the user and best-effort
// loads any persisted condensed memory. Calling it again for a user with an
// active session is a no-op, so redundant calls are safe.
func (s *Service) InitSession(ctx context.Context, userID string) {
	s.mu.Lock()
	if existing, ok := s.sessions[userID]; ok && existing.State == memory.StateActive {
		s.mu.Unlock()
		return
	}
	s.sessions[userID] = &memory.Session{
		UserID:    userID,
		State:     memory.StateActive,
		StartedAt: time.Now(),
	}
	s.mu.Unlock()

	// Absence of a condensed memory is the normal new-user case, not an error.
	data, err := s.store.Get(ctx, CondensedCollection, userID)
	if err != nil {
		s.logger.Debug("Condensed memory load failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}
	var cond memory.Condensed
	if err := json.Unmarshal(data, &cond); err != nil {
		s.logger.Warn("Stored condensed memory is malformed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.condensed[userID] = &cond
	s.mu.Unlock()
}

// RecordEvent appends an event to the user's active session. Without an
// active session it is a no-op.
func (s *Service) RecordEvent(userID string, e memory.Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || sess.State != memory.StateActive {
		return
	}
	sess.Append(e)
}

// SessionState reports the lifecycle state for a user.
func (s *Service) SessionState(userID string) memory.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.State
	}
	return memory.StateUninitialized
}

// TokenEstimate reports the running prompt-cost estimate of the session.
func (s *Service) TokenEstimate(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.TokenEstimate
	}
	return 0
}

// OptimizedContext renders the compact prompt-context string for a user:
// the condensed long-term summary and avoid patterns when present, then the
// most recent session events split into just-liked and just-skipped dish
// lists. Deterministic for a given session state.
func (s *Service) OptimizedContext(userID string, mode ContextMode) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder

	if cond, ok := s.condensed[userID]; ok {
		if cond.Summary != "" {
			fmt.Fprintf(&b, "Taste profile: %s\n", cond.Summary)
		}
		if len(cond.AvoidPatterns) > 0 {
			fmt.Fprintf(&b, "Avoid: %s\n", strings.Join(cond.AvoidPatterns, ", "))
		}
	}

	if sess, ok := s.sessions[userID]; ok {
		var liked, skipped []string
		for _, e := range sess.Tail(contextEventWindow) {
			switch e.Type {
			case memory.EventLike:
				liked = append(liked, e.DishName)
			case memory.EventSkip:
				skipped = append(skipped, e.DishName)
			}
		}
		if len(liked) > 0 {
			fmt.Fprintf(&b, "Just liked: %s\n", strings.Join(liked, ", "))
		}
		if len(skipped) > 0 {
			fmt.Fprintf(&b, "Just skipped: %s\n", strings.Join(skipped, ", "))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Condensed returns the in-memory condensed summary for a user, or nil.
func (s *Service) Condensed(userID string) *memory.Condensed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.condensed[userID]
}

// CondenseSession is the terminal session operation: it digests the session's
// swipe and search events, asks the summarizer collaborator for a structured
// summary, persists it as the new condensed memory, and upserts a taste
// vector. On any error the session state is left unchanged and the error is
// logged, not propagated.
func (s *Service) CondenseSession(ctx context.Context, userID string) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	if !ok || sess.State != memory.StateActive || len(sess.Events) == 0 {
		s.mu.RUnlock()
		return
	}
	digest := buildDigest(sess)
	s.mu.RUnlock()

	summary, err := s.ai.SummarizeSession(ctx, digest)
	if err != nil {
		s.logger.Warn("Session summarization failed, keeping session active",
			zap.String("user_id", userID), zap.Error(err))
		return
	}

	cond := &memory.Condensed{
		Summary:           summary.Summary,
		CuisineAffinities: summary.CuisineAffinities,
		AvoidPatterns:     summary.AvoidPatterns,
		UpdatedAt:         time.Now(),
	}
	data, err := json.Marshal(cond)
	if err != nil {
		s.logger.Warn("Condensed memory marshal failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, CondensedCollection, userID, data); err != nil {
		s.logger.Warn("Condensed memory store failed, keeping session active",
			zap.String("user_id", userID), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.condensed[userID] = cond
	sess.State = memory.StateCondensed
	s.mu.Unlock()

	// The taste vector is best-effort on top of the stored summary.
	if embedding, err := s.ai.GenerateEmbedding(ctx, summary.Summary); err == nil && len(embedding) > 0 {
		record := outbound.VectorRecord{
			ID:     fmt.Sprintf("user_%s_taste", userID),
			Values: embedding,
			Metadata: map[string]string{
				"user_id": userID,
				"summary": summary.Summary,
			},
		}
		if err := s.vectors.Upsert(ctx, []outbound.VectorRecord{record}, "personas"); err != nil {
			s.logger.Debug("Taste vector upsert failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("Session condensed",
		zap.String("user_id", userID),
		zap.Int("events", len(sess.Events)),
	)
}

// buildDigest renders the session's signal into the summarizer prompt body.
func buildDigest(sess *memory.Session) string {
	var liked, skipped, searched []string
	for _, e := range sess.Events {
		switch e.Type {
		case memory.EventLike:
			liked = append(liked, e.DishName)
		case memory.EventSkip:
			skipped = append(skipped, e.DishName)
		case memory.EventSearch:
			searched = append(searched, e.Query)
		}
	}

	var b strings.Builder
	if len(liked) > 0 {
		fmt.Fprintf(&b, "Liked dishes: %s\n", strings.Join(liked, ", "))
	}
	if len(skipped) > 0 {
		fmt.Fprintf(&b, "Skipped dishes: %s\n", strings.Join(skipped, ", "))
	}
	if len(searched) > 0 {
		fmt.Fprintf(&b, "Searches: %s\n", strings.Join(searched, ", "))
	}
	return b.String()
}
