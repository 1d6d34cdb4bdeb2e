// Package persona defines the static archetype templates used to bootstrap
// recommendations for users with no taste signal. Templates are matched
// against a profile, never mutated.
package persona

// ID identifies a persona template.
type ID string

const (
	HealthEnthusiast ID = "health-enthusiast"
	ComfortSeeker    ID = "comfort-seeker"
	WeightManagement ID = "weight-management"
	BusyProfessional ID = "busy-professional"
	SpiceAdventurer  ID = "spice-adventurer"
	BalancedEveryday ID = "balanced-everyday"
)

// Fallback is returned when assignment fails for any reason.
const Fallback = BalancedEveryday

// Persona is one static archetype template.
type Persona struct {
	ID             ID                 `json:"id"`
	Description    string             `json:"description"`
	CuisineWeights map[string]float64 `json:"cuisine_weights,omitempty"`
	Preferences    []string           `json:"preferences,omitempty"`
	AvoidPatterns  []string           `json:"avoid_patterns,omitempty"`
	SampleDishes   []string           `json:"sample_dishes,omitempty"`
}
