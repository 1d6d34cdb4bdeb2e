package recommend

import (
	"testing"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/stretchr/testify/assert"
)

func namedDishes(names ...string) []*dish.Dish {
	out := make([]*dish.Dish, len(names))
	for i, n := range names {
		out[i] = &dish.Dish{Name: n}
	}
	return out
}

func dishNames(dishes []*dish.Dish) []string {
	out := make([]string, len(dishes))
	for i, d := range dishes {
		out[i] = d.Name
	}
	return out
}

func TestFilterUnseenDishes(t *testing.T) {
	tests := []struct {
		name     string
		dishes   []*dish.Dish
		shown    []string
		expected []string
	}{
		{
			name:     "removes shown matches case-insensitively",
			dishes:   namedDishes("Palak Paneer", "Dal Tadka", "Green Curry"),
			shown:    []string{"palak paneer", "GREEN CURRY"},
			expected: []string{"Dal Tadka"},
		},
		{
			name:     "preserves order of the remainder",
			dishes:   namedDishes("A", "B", "C", "D"),
			shown:    []string{"b"},
			expected: []string{"A", "C", "D"},
		},
		{
			name:     "empty shown returns input untouched",
			dishes:   namedDishes("A", "B"),
			shown:    nil,
			expected: []string{"A", "B"},
		},
		{
			name:     "all shown yields empty",
			dishes:   namedDishes("A"),
			shown:    []string{"a"},
			expected: []string{},
		},
		{
			name:     "nil dishes",
			dishes:   nil,
			shown:    []string{"a"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterUnseenDishes(tt.dishes, tt.shown)
			assert.Equal(t, tt.expected, dishNames(got))
		})
	}
}
