// Package ingredient contains the core domain model for the ingredient
// knowledge graph: nodes, their classification enums, and the key
// normalization every graph read and write goes through.
package ingredient

import "strings"

// Category classifies where an ingredient sits in a kitchen.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryProtein Category = "protein"
	CategoryDairy   Category = "dairy"
	CategoryPantry  Category = "pantry"
	CategorySpices  Category = "spices"
	CategoryOther   Category = "other"
)

// Tier marks how a node entered the graph. Common nodes come from the seed
// dataset; Exotic nodes are learned at runtime from generated dishes.
type Tier string

const (
	TierCommon Tier = "common"
	TierExotic Tier = "exotic"
)

// Allergen is a tagged category used for hard exclusion filtering.
type Allergen string

const (
	AllergenDairy     Allergen = "Dairy"
	AllergenNuts      Allergen = "Nuts"
	AllergenGluten    Allergen = "Gluten"
	AllergenEggs      Allergen = "Eggs"
	AllergenShellfish Allergen = "Shellfish"
	AllergenSoy       Allergen = "Soy"
	AllergenFish      Allergen = "Fish"
	AllergenSesame    Allergen = "Sesame"
)

// GlycemicIndex buckets an ingredient's glycemic load.
type GlycemicIndex string

const (
	GlycemicLow    GlycemicIndex = "low"
	GlycemicMedium GlycemicIndex = "medium"
	GlycemicHigh   GlycemicIndex = "high"
)

// Node represents one known ingredient in the knowledge graph.
type Node struct {
	DisplayName   string        `json:"display_name"`
	Category      Category      `json:"category"`
	Tier          Tier          `json:"tier"`
	Allergens     []Allergen    `json:"allergens,omitempty"`
	Substitutes   []string      `json:"substitutes,omitempty"`
	CommonIn      []string      `json:"common_in,omitempty"`
	GlycemicIndex GlycemicIndex `json:"glycemic_index,omitempty"`
	FlavorProfile string        `json:"flavor_profile,omitempty"`
	Texture       string        `json:"texture,omitempty"`
	StorageNotes  string        `json:"storage_notes,omitempty"`
}

// HasAllergen reports whether the node carries the given allergen tag.
func (n *Node) HasAllergen(a Allergen) bool {
	for _, tag := range n.Allergens {
		if tag == a {
			return true
		}
	}
	return false
}

// HasAnyAllergen reports whether the node's allergens intersect the given set.
func (n *Node) HasAnyAllergen(allergens []Allergen) bool {
	for _, a := range allergens {
		if n.HasAllergen(a) {
			return true
		}
	}
	return false
}

// Normalize derives the graph key for an ingredient name: lowercase, trimmed,
// internal whitespace runs collapsed to a single underscore. It is idempotent
// and is the only key derivation used for graph reads and writes.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
