package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Paneer", expected: "paneer"},
		{name: "trims surrounding whitespace", input: "  basmati rice  ", expected: "basmati_rice"},
		{name: "collapses internal whitespace runs", input: "extra   virgin\tolive  oil", expected: "extra_virgin_olive_oil"},
		{name: "empty input", input: "", expected: ""},
		{name: "whitespace only", input: "   \t  ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Palak  Paneer", "GREEK Yogurt", "chana masala"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNodeHasAllergen(t *testing.T) {
	node := &Node{
		DisplayName: "Paneer",
		Category:    CategoryDairy,
		Allergens:   []Allergen{AllergenDairy},
	}

	assert.True(t, node.HasAllergen(AllergenDairy))
	assert.False(t, node.HasAllergen(AllergenNuts))
	assert.True(t, node.HasAnyAllergen([]Allergen{AllergenNuts, AllergenDairy}))
	assert.False(t, node.HasAnyAllergen([]Allergen{AllergenNuts, AllergenSoy}))
	assert.False(t, node.HasAnyAllergen(nil))
}

func TestInferAllergens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category Category
		expected []Allergen
	}{
		{name: "nut keyword", input: "Cashew Cream Sauce", category: CategoryOther, expected: []Allergen{AllergenNuts, AllergenDairy}},
		{name: "dairy category without keyword", input: "Mascarpone", category: CategoryDairy, expected: []Allergen{AllergenDairy}},
		{name: "shellfish keyword", input: "tiger prawns", category: CategoryProtein, expected: []Allergen{AllergenShellfish}},
		{name: "no match", input: "quinoa", category: CategoryPantry, expected: nil},
		{name: "case insensitive", input: "TAHINI paste", category: CategoryPantry, expected: []Allergen{AllergenSesame}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferAllergens(tt.input, tt.category, DefaultInferenceRules))
		})
	}
}

func TestInferAllergensNoDuplicates(t *testing.T) {
	// Both the category and the keyword would add Dairy.
	got := InferAllergens("paneer butter milk", CategoryDairy, DefaultInferenceRules)
	assert.Equal(t, []Allergen{AllergenDairy}, got)
}
