package persona

import (
	"github.com/mealforge/v1/internal/domain/persona"
	"github.com/mealforge/v1/internal/domain/profile"
)

// Templates returns the static persona set. Order matters: assignment ties
// break toward the earlier entry.
func Templates() []persona.Persona {
	return []persona.Persona{
		{
			ID:          persona.HealthEnthusiast,
			Description: "Tracks macros, prefers whole foods and light cooking.",
			CuisineWeights: map[string]float64{
				"mediterranean": 1.0,
				"japanese":      0.8,
				"american":      0.5,
			},
			Preferences:   []string{"high-protein", "low-oil", "fresh produce"},
			AvoidPatterns: []string{"deep-fried", "heavy cream"},
			SampleDishes:  []string{"Grilled Salmon Salad", "Quinoa Power Bowl", "Overnight Oats"},
		},
		{
			ID:          persona.ComfortSeeker,
			Description: "Wants familiar, hearty, satisfying meals.",
			CuisineWeights: map[string]float64{
				"indian":   0.9,
				"italian":  0.9,
				"american": 0.7,
			},
			Preferences:   []string{"rich gravies", "cheesy", "slow-cooked"},
			AvoidPatterns: []string{"raw salads"},
			SampleDishes:  []string{"Palak Paneer", "Mushroom Risotto", "Margherita Pasta"},
		},
		{
			ID:          persona.WeightManagement,
			Description: "Calorie-aware, portion-controlled, high satiety.",
			CuisineWeights: map[string]float64{
				"mediterranean": 0.9,
				"indian":        0.6,
			},
			Preferences:   []string{"low-calorie", "high-fiber", "lean protein"},
			AvoidPatterns: []string{"sugary desserts", "fried snacks"},
			SampleDishes:  []string{"Dal Tadka", "Veggie Stir Fry", "Grilled Salmon Salad"},
		},
		{
			ID:          persona.BusyProfessional,
			Description: "Optimizes for speed: one-pot and under thirty minutes.",
			CuisineWeights: map[string]float64{
				"chinese":  0.8,
				"mexican":  0.8,
				"american": 0.6,
			},
			Preferences:   []string{"quick", "one-pot", "meal-prep friendly"},
			AvoidPatterns: []string{"multi-hour recipes"},
			SampleDishes:  []string{"Tofu Fried Rice", "Black Bean Tacos", "Chicken Burrito Bowl"},
		},
		{
			ID:          persona.SpiceAdventurer,
			Description: "Chases bold, spicy, unfamiliar flavor.",
			CuisineWeights: map[string]float64{
				"thai":    1.0,
				"indian":  0.9,
				"mexican": 0.8,
			},
			Preferences:   []string{"spicy", "fermented", "street food"},
			AvoidPatterns: []string{"bland", "plain"},
			SampleDishes:  []string{"Green Curry", "Chana Masala", "Shrimp Pad Thai"},
		},
		{
			ID:          persona.BalancedEveryday,
			Description: "No strong leanings; balanced rotation across cuisines.",
			CuisineWeights: map[string]float64{
				"indian":   0.5,
				"italian":  0.5,
				"american": 0.5,
			},
			Preferences:  []string{"variety", "seasonal"},
			SampleDishes: []string{"Chicken Tikka", "Aloo Gobi", "Veggie Omelette"},
		},
	}
}

// conditionAffinity maps a user health condition to the personas it favors.
var conditionAffinity = map[string][]persona.ID{
	"diabetes":         {persona.WeightManagement, persona.HealthEnthusiast},
	"hypertension":     {persona.HealthEnthusiast},
	"obesity":          {persona.WeightManagement},
	"high cholesterol": {persona.HealthEnthusiast, persona.WeightManagement},
	"pcos":             {persona.WeightManagement},
}

// dietAffinity maps a dietary preference to the personas it favors.
var dietAffinity = map[profile.DietaryPreference][]persona.ID{
	profile.DietVegan:         {persona.HealthEnthusiast},
	profile.DietVegetarian:    {persona.ComfortSeeker},
	profile.DietNonVegetarian: {persona.SpiceAdventurer},
}

// cuisineAffinity maps a preferred cuisine to the personas it favors.
var cuisineAffinity = map[string][]persona.ID{
	"indian":        {persona.ComfortSeeker, persona.SpiceAdventurer},
	"italian":       {persona.ComfortSeeker},
	"thai":          {persona.SpiceAdventurer},
	"mexican":       {persona.SpiceAdventurer, persona.BusyProfessional},
	"chinese":       {persona.BusyProfessional},
	"mediterranean": {persona.HealthEnthusiast, persona.WeightManagement},
	"japanese":      {persona.HealthEnthusiast},
	"american":      {persona.BalancedEveryday},
}
