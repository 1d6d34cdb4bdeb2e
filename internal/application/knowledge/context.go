package knowledge

import (
	"fmt"
	"strings"

	"github.com/mealforge/v1/internal/domain/ingredient"
)

// conditionRules holds the generic prompt rules for known health conditions.
// Matching is case-insensitive on the condition name.
var conditionRules = map[string]string{
	"diabetes":     "Flag high-glycemic ingredients (white rice, potato, sugar) and prefer low-GI alternatives.",
	"hypertension": "Keep sodium low; avoid heavily salted, pickled, or cured ingredients.",
}

// SafetyContext builds the minimal human-readable rules block for a prompt:
// substitution rules for only the ingredients relevant to the given
// allergens, plus generic rules for known health conditions. Output length
// is bounded by the number of relevant entries, not by graph size.
func (s *Service) SafetyContext(allergens []ingredient.Allergen, conditions []string) string {
	if len(allergens) == 0 && len(conditions) == 0 {
		return "No dietary restrictions apply."
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Safety rules:\n")

	if len(allergens) > 0 {
		names := make([]string, len(allergens))
		for i, a := range allergens {
			names[i] = string(a)
		}
		fmt.Fprintf(&b, "- Strictly exclude all %s ingredients.\n", strings.Join(names, ", "))

		// Substitution hints only for flagged ingredients that have them.
		count := 0
		for _, node := range s.nodes {
			if count >= maxSubstitutionRules {
				break
			}
			if !node.HasAnyAllergen(allergens) || len(node.Substitutes) == 0 {
				continue
			}
			fmt.Fprintf(&b, "- Replace %s with %s.\n",
				strings.ToLower(node.DisplayName), strings.Join(node.Substitutes, " or "))
			count++
		}
	}

	for _, cond := range conditions {
		if rule, ok := conditionRules[strings.ToLower(strings.TrimSpace(cond))]; ok {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// maxSubstitutionRules caps the substitution hints so prompt payloads stay
// small even as the graph learns.
const maxSubstitutionRules = 12
