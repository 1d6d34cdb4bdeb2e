package ingredient

import "strings"

// InferenceRule maps a name substring to an allergen tag. Rules back the
// heuristic classifier used when the graph learns ingredients it has never
// seen; keeping them as data lets a real classifier replace them without
// touching call sites.
type InferenceRule struct {
	Keyword  string
	Allergen Allergen
}

// DefaultInferenceRules is the stock keyword table for runtime allergen
// inference on learned ingredients.
var DefaultInferenceRules = []InferenceRule{
	{Keyword: "nut", Allergen: AllergenNuts},
	{Keyword: "cashew", Allergen: AllergenNuts},
	{Keyword: "almond", Allergen: AllergenNuts},
	{Keyword: "pistachio", Allergen: AllergenNuts},
	{Keyword: "walnut", Allergen: AllergenNuts},
	{Keyword: "milk", Allergen: AllergenDairy},
	{Keyword: "paneer", Allergen: AllergenDairy},
	{Keyword: "butter", Allergen: AllergenDairy},
	{Keyword: "cheese", Allergen: AllergenDairy},
	{Keyword: "cream", Allergen: AllergenDairy},
	{Keyword: "yogurt", Allergen: AllergenDairy},
	{Keyword: "ghee", Allergen: AllergenDairy},
	{Keyword: "shrimp", Allergen: AllergenShellfish},
	{Keyword: "prawn", Allergen: AllergenShellfish},
	{Keyword: "crab", Allergen: AllergenShellfish},
	{Keyword: "lobster", Allergen: AllergenShellfish},
	{Keyword: "egg", Allergen: AllergenEggs},
	{Keyword: "wheat", Allergen: AllergenGluten},
	{Keyword: "flour", Allergen: AllergenGluten},
	{Keyword: "bread", Allergen: AllergenGluten},
	{Keyword: "soy", Allergen: AllergenSoy},
	{Keyword: "tofu", Allergen: AllergenSoy},
	{Keyword: "fish", Allergen: AllergenFish},
	{Keyword: "salmon", Allergen: AllergenFish},
	{Keyword: "tuna", Allergen: AllergenFish},
	{Keyword: "sesame", Allergen: AllergenSesame},
	{Keyword: "tahini", Allergen: AllergenSesame},
}

// InferAllergens runs the rule table against an ingredient name and category.
// A dairy category implies the Dairy tag regardless of keywords. The result
// carries no duplicates.
func InferAllergens(name string, category Category, rules []InferenceRule) []Allergen {
	lower := strings.ToLower(name)
	seen := make(map[Allergen]bool)
	var out []Allergen

	add := func(a Allergen) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}

	if category == CategoryDairy {
		add(AllergenDairy)
	}
	for _, rule := range rules {
		if strings.Contains(lower, rule.Keyword) {
			add(rule.Allergen)
		}
	}
	return out
}
