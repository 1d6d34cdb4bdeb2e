// Package profile contains the user profile model the recommendation
// pipeline personalizes against. Profiles are owned by the user session and
// mutated by onboarding and swipe events.
package profile

import "github.com/mealforge/v1/internal/domain/ingredient"

// DietaryPreference is the user's base diet.
type DietaryPreference string

const (
	DietAny           DietaryPreference = "any"
	DietVegetarian    DietaryPreference = "vegetarian"
	DietVegan         DietaryPreference = "vegan"
	DietNonVegetarian DietaryPreference = "non-vegetarian"
)

// Goal is the user's stated fitness goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ActivityLevel buckets daily activity.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// Biometrics holds the physical attributes gathered at onboarding.
type Biometrics struct {
	Goal          Goal          `json:"goal,omitempty"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
	HeightCM      float64       `json:"height_cm,omitempty"`
	WeightKG      float64       `json:"weight_kg,omitempty"`
	Age           int           `json:"age,omitempty"`
}

// UserProfile is the full personalization input for one user.
type UserProfile struct {
	UserID            string                `json:"user_id"`
	DietaryPreference DietaryPreference     `json:"dietary_preference"`
	Allergens         []ingredient.Allergen `json:"allergens,omitempty"`
	Conditions        []string              `json:"conditions,omitempty"`
	Cuisines          []string              `json:"cuisines,omitempty"`
	Biometrics        Biometrics            `json:"biometrics,omitempty"`
	LikedDishes       []string              `json:"liked_dishes,omitempty"`
	DislikedDishes    []string              `json:"disliked_dishes,omitempty"`
}

// IsNew reports whether the profile has produced no taste signal yet.
// Brand-new users take the persona path in tier 2.
func (p *UserProfile) IsNew() bool {
	return len(p.LikedDishes) == 0 && len(p.DislikedDishes) == 0
}
