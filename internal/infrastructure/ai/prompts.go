package ai

import (
	"fmt"
	"strings"

	"github.com/mealforge/v1/internal/domain/ingredient"
	"github.com/mealforge/v1/internal/ports/outbound"
)

// dishPrompt renders the generation request. Hard safety constraints are
// enforced deterministically after the call; the prompt only steers.
func dishPrompt(c outbound.DishConstraints) string {
	count := c.Count
	if count <= 0 {
		count = 3
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d dishes as JSON: {\"dishes\":[{\"name\",\"description\",\"cuisine\",\"slot\",\"ingredients\":[{\"name\",\"category\",\"quantity\"}],\"macros\":{\"calories\",\"protein\",\"carbs\",\"fat\"},\"tags\",\"health_tags\"}]}.\n", count)
	if c.DietaryPreference != "" {
		fmt.Fprintf(&b, "Diet: %s.\n", c.DietaryPreference)
	}
	if len(c.Allergens) > 0 {
		fmt.Fprintf(&b, "Never include: %s.\n", strings.Join(c.Allergens, ", "))
	}
	if len(c.Cuisines) > 0 {
		fmt.Fprintf(&b, "Preferred cuisines: %s.\n", strings.Join(c.Cuisines, ", "))
	}
	if c.SafetyContext != "" {
		b.WriteString(c.SafetyContext)
		b.WriteByte('\n')
	}
	if c.PromptContext != "" {
		b.WriteString(c.PromptContext)
		b.WriteByte('\n')
	}
	return b.String()
}

// summaryPrompt renders the session condensation request.
func summaryPrompt(digest string) string {
	return "Summarize this user's food preferences as JSON: {\"summary\",\"cuisine_affinities\":{cuisine:weight},\"avoid_patterns\":[]}.\nSession signal:\n" + digest
}

func ingredientCategory(s string) ingredient.Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "produce":
		return ingredient.CategoryProduce
	case "protein":
		return ingredient.CategoryProtein
	case "dairy":
		return ingredient.CategoryDairy
	case "pantry":
		return ingredient.CategoryPantry
	case "spices", "spice":
		return ingredient.CategorySpices
	case "":
		return ""
	default:
		return ingredient.CategoryOther
	}
}
