package knowledge

import (
	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/domain/ingredient"
)

// SeedIngredients returns the built-in ingredient catalog. The graph copies
// the slice at construction, so callers may share it freely.
func SeedIngredients() []ingredient.Node {
	return []ingredient.Node{
		// Produce
		{DisplayName: "Onion", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Mexican", "Italian"}, GlycemicIndex: ingredient.GlycemicLow, FlavorProfile: "pungent-sweet"},
		{DisplayName: "Tomato", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Italian", "Indian", "Mediterranean"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Garlic", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Italian", "Chinese", "Indian"}, FlavorProfile: "sharp"},
		{DisplayName: "Spinach", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Mediterranean"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Potato", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "American"}, GlycemicIndex: ingredient.GlycemicHigh},
		{DisplayName: "Cauliflower", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Indian"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Bell Pepper", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Mexican", "Chinese"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Avocado", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Mexican"}, GlycemicIndex: ingredient.GlycemicLow, Texture: "creamy"},
		{DisplayName: "Mushroom", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Italian", "Chinese"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Ginger", Category: ingredient.CategoryProduce, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Chinese", "Thai"}},

		// Protein
		{DisplayName: "Chicken", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "American", "Chinese"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Egg", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenEggs}, Substitutes: []string{"tofu scramble", "chickpea flour"}, CommonIn: []string{"American", "Chinese"}},
		{DisplayName: "Salmon", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenFish}, CommonIn: []string{"Japanese", "Mediterranean"}},
		{DisplayName: "Shrimp", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenShellfish}, Substitutes: []string{"chicken", "mushroom"}, CommonIn: []string{"Thai", "Chinese"}},
		{DisplayName: "Tofu", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenSoy}, Substitutes: []string{"paneer", "seitan"}, CommonIn: []string{"Chinese", "Japanese", "Thai"}, Texture: "soft"},
		{DisplayName: "Chickpeas", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Mediterranean"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Lentils", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, CommonIn: []string{"Indian"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Black Beans", Category: ingredient.CategoryProtein, Tier: ingredient.TierCommon, CommonIn: []string{"Mexican"}, GlycemicIndex: ingredient.GlycemicLow},

		// Dairy
		{DisplayName: "Paneer", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"tofu"}, CommonIn: []string{"Indian"}, Texture: "firm"},
		{DisplayName: "Milk", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"oat milk", "almond milk"}, CommonIn: []string{"American"}},
		{DisplayName: "Butter", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"olive oil", "coconut oil"}, CommonIn: []string{"French", "Indian"}},
		{DisplayName: "Cheese", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"nutritional yeast", "cashew cheese"}, CommonIn: []string{"Italian", "Mexican", "American"}},
		{DisplayName: "Yogurt", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"coconut yogurt"}, CommonIn: []string{"Indian", "Mediterranean"}},
		{DisplayName: "Ghee", Category: ingredient.CategoryDairy, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenDairy}, Substitutes: []string{"coconut oil"}, CommonIn: []string{"Indian"}},

		// Pantry
		{DisplayName: "Rice", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Chinese", "Japanese"}, GlycemicIndex: ingredient.GlycemicHigh},
		{DisplayName: "Quinoa", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, CommonIn: []string{"American"}, GlycemicIndex: ingredient.GlycemicLow},
		{DisplayName: "Wheat Flour", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenGluten}, Substitutes: []string{"almond flour", "rice flour"}, CommonIn: []string{"Indian", "American"}, GlycemicIndex: ingredient.GlycemicHigh},
		{DisplayName: "Pasta", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenGluten}, Substitutes: []string{"rice noodles", "zucchini noodles"}, CommonIn: []string{"Italian"}, GlycemicIndex: ingredient.GlycemicMedium},
		{DisplayName: "Bread", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenGluten}, Substitutes: []string{"gluten-free bread"}, CommonIn: []string{"American"}, GlycemicIndex: ingredient.GlycemicHigh},
		{DisplayName: "Soy Sauce", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenSoy, ingredient.AllergenGluten}, Substitutes: []string{"coconut aminos"}, CommonIn: []string{"Chinese", "Japanese"}},
		{DisplayName: "Peanut Butter", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenNuts}, Substitutes: []string{"sunflower seed butter"}, CommonIn: []string{"American", "Thai"}},
		{DisplayName: "Almonds", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenNuts}, Substitutes: []string{"pumpkin seeds"}, CommonIn: []string{"Indian", "Mediterranean"}},
		{DisplayName: "Cashews", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenNuts}, Substitutes: []string{"sunflower seeds"}, CommonIn: []string{"Indian", "Thai"}},
		{DisplayName: "Tahini", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, Allergens: []ingredient.Allergen{ingredient.AllergenSesame}, CommonIn: []string{"Mediterranean"}},
		{DisplayName: "Olive Oil", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, CommonIn: []string{"Italian", "Mediterranean"}},
		{DisplayName: "Coconut Milk", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, CommonIn: []string{"Thai", "Indian"}, Texture: "creamy"},
		{DisplayName: "Oats", Category: ingredient.CategoryPantry, Tier: ingredient.TierCommon, CommonIn: []string{"American"}, GlycemicIndex: ingredient.GlycemicLow},

		// Spices
		{DisplayName: "Turmeric", Category: ingredient.CategorySpices, Tier: ingredient.TierCommon, CommonIn: []string{"Indian"}},
		{DisplayName: "Cumin", Category: ingredient.CategorySpices, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Mexican"}},
		{DisplayName: "Chili Powder", Category: ingredient.CategorySpices, Tier: ingredient.TierCommon, CommonIn: []string{"Indian", "Mexican"}, FlavorProfile: "hot"},
		{DisplayName: "Garam Masala", Category: ingredient.CategorySpices, Tier: ingredient.TierCommon, CommonIn: []string{"Indian"}},
		{DisplayName: "Basil", Category: ingredient.CategorySpices, Tier: ingredient.TierCommon, CommonIn: []string{"Italian", "Thai"}},
	}
}

// SeedTemplates returns the built-in canonical dish catalog.
func SeedTemplates() []dish.Template {
	return []dish.Template{
		{Name: "Palak Paneer", Cuisine: "Indian", EssentialIngredients: []string{"paneer", "spinach", "garam masala"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotDinner},
		{Name: "Chana Masala", Cuisine: "Indian", EssentialIngredients: []string{"chickpeas", "tomato", "cumin"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotDinner},
		{Name: "Dal Tadka", Cuisine: "Indian", EssentialIngredients: []string{"lentils", "turmeric", "ghee"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotLunch},
		{Name: "Aloo Gobi", Cuisine: "Indian", EssentialIngredients: []string{"potato", "cauliflower", "turmeric"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotDinner},
		{Name: "Chicken Tikka", Cuisine: "Indian", EssentialIngredients: []string{"chicken", "yogurt", "garam masala"}, DietaryTags: []dish.DietaryTag{dish.TagNonVeg}, Slot: dish.SlotDinner},
		{Name: "Margherita Pasta", Cuisine: "Italian", EssentialIngredients: []string{"pasta", "tomato", "basil", "cheese"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotDinner},
		{Name: "Mushroom Risotto", Cuisine: "Italian", EssentialIngredients: []string{"rice", "mushroom", "butter"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotDinner},
		{Name: "Veggie Stir Fry", Cuisine: "Chinese", EssentialIngredients: []string{"bell pepper", "soy sauce", "ginger"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotDinner},
		{Name: "Tofu Fried Rice", Cuisine: "Chinese", EssentialIngredients: []string{"tofu", "rice", "soy sauce"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotLunch},
		{Name: "Shrimp Pad Thai", Cuisine: "Thai", EssentialIngredients: []string{"shrimp", "rice", "peanut butter"}, DietaryTags: []dish.DietaryTag{dish.TagNonVeg}, Slot: dish.SlotDinner},
		{Name: "Green Curry", Cuisine: "Thai", EssentialIngredients: []string{"coconut milk", "basil", "chili powder"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotDinner},
		{Name: "Black Bean Tacos", Cuisine: "Mexican", EssentialIngredients: []string{"black beans", "avocado", "cumin"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotLunch},
		{Name: "Chicken Burrito Bowl", Cuisine: "Mexican", EssentialIngredients: []string{"chicken", "rice", "black beans"}, DietaryTags: []dish.DietaryTag{dish.TagNonVeg}, Slot: dish.SlotLunch},
		{Name: "Grilled Salmon Salad", Cuisine: "Mediterranean", EssentialIngredients: []string{"salmon", "spinach", "olive oil"}, DietaryTags: []dish.DietaryTag{dish.TagNonVeg}, Slot: dish.SlotLunch},
		{Name: "Quinoa Power Bowl", Cuisine: "American", EssentialIngredients: []string{"quinoa", "chickpeas", "avocado"}, DietaryTags: []dish.DietaryTag{dish.TagVegan}, Slot: dish.SlotLunch},
		{Name: "Overnight Oats", Cuisine: "American", EssentialIngredients: []string{"oats", "milk", "almonds"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotBreakfast},
		{Name: "Veggie Omelette", Cuisine: "American", EssentialIngredients: []string{"egg", "bell pepper", "cheese"}, DietaryTags: []dish.DietaryTag{dish.TagVegetarian}, Slot: dish.SlotBreakfast},
	}
}
