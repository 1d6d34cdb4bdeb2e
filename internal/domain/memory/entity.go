// Package memory contains the session event log and the condensed long-term
// preference summary that together feed prompt context assembly.
package memory

import "time"

// EventType classifies a session event.
type EventType string

const (
	EventLike   EventType = "like"
	EventSkip   EventType = "skip"
	EventSearch EventType = "search"
	EventCook   EventType = "cook"
)

// Event is one user action inside a session.
type Event struct {
	Type      EventType `json:"type"`
	DishName  string    `json:"dish_name,omitempty"`
	Query     string    `json:"query,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Text returns whatever free text the event embeds, for token estimation.
func (e Event) Text() string {
	if e.Query != "" {
		return e.Query
	}
	return e.DishName
}

// Token estimation heuristic: a fixed per-event overhead plus roughly four
// characters per token of embedded text.
const (
	eventTokenOverhead = 8
	charsPerToken      = 4
)

// EstimateTokens approximates the prompt cost of one event.
func EstimateTokens(e Event) int {
	text := e.Text()
	return eventTokenOverhead + (len(text)+charsPerToken-1)/charsPerToken
}

// SessionState tracks the lifecycle of one user session.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateActive        SessionState = "active"
	StateCondensed     SessionState = "condensed"
)

// Session is the short-term per-user event log.
type Session struct {
	UserID        string       `json:"user_id"`
	State         SessionState `json:"state"`
	Events        []Event      `json:"events"`
	TokenEstimate int          `json:"token_estimate"`
	StartedAt     time.Time    `json:"started_at"`
}

// Append records an event and updates the running token estimate.
func (s *Session) Append(e Event) {
	s.Events = append(s.Events, e)
	s.TokenEstimate += EstimateTokens(e)
}

// Tail returns the last n events, oldest first.
func (s *Session) Tail(n int) []Event {
	if n <= 0 || len(s.Events) == 0 {
		return nil
	}
	if len(s.Events) <= n {
		return s.Events
	}
	return s.Events[len(s.Events)-n:]
}

// Condensed is the long-lived per-user taste summary, regenerated by an LLM
// summarization step at session end and persisted externally.
type Condensed struct {
	Summary           string             `json:"summary"`
	CuisineAffinities map[string]float64 `json:"cuisine_affinities,omitempty"`
	AvoidPatterns     []string           `json:"avoid_patterns,omitempty"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
