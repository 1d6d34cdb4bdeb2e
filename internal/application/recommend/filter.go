package recommend

import (
	"strings"

	"github.com/mealforge/v1/internal/domain/dish"
)

// FilterUnseenDishes removes dishes whose names case-insensitively match an
// entry in shown, preserving the order of the remainder.
func FilterUnseenDishes(dishes []*dish.Dish, shown []string) []*dish.Dish {
	if len(dishes) == 0 || len(shown) == 0 {
		return dishes
	}

	seen := make(map[string]bool, len(shown))
	for _, name := range shown {
		seen[strings.ToLower(name)] = true
	}

	out := make([]*dish.Dish, 0, len(dishes))
	for _, d := range dishes {
		if !seen[strings.ToLower(d.Name)] {
			out = append(out, d)
		}
	}
	return out
}
