package service

import (
	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// FallbackNote accompanies batches built from the sample recipes
const FallbackNote = "Using sample recipes due to API error or during development"

var sampleRecipes = [TargetRecipeCount]types.Recipe{
	{
		Title:       "Quick Pasta Primavera",
		Description: "A light and colorful pasta dish loaded with fresh vegetables",
		Ingredients: []string{
			"8 oz pasta",
			"2 tbsp olive oil",
			"2 cloves garlic, minced",
			"1 bell pepper, sliced",
			"1 zucchini, diced",
			"1 cup cherry tomatoes, halved",
			"1/4 cup grated parmesan",
		},
		Instructions: []string{
			"Cook pasta according to package directions",
			"Heat olive oil in a large skillet over medium heat",
			"Add garlic and sauté for 30 seconds",
			"Add vegetables and cook until tender, about 5 minutes",
			"Drain pasta and add to the skillet with vegetables",
			"Toss with parmesan cheese and serve warm",
		},
		CookingTime: "20 minutes",
	},
	{
		Title:       "Classic Omelette",
		Description: "Fluffy eggs filled with cheese and vegetables",
		Ingredients: []string{
			"3 large eggs",
			"2 tbsp butter",
			"1/4 cup shredded cheese",
			"Salt and pepper to taste",
			"2 tbsp chopped fresh herbs (optional)",
		},
		Instructions: []string{
			"Whisk eggs in a bowl with salt and pepper",
			"Melt butter in a non-stick skillet over medium heat",
			"Pour in egg mixture and cook until edges set",
			"Sprinkle cheese over half of the omelette",
			"Fold omelette in half and cook until cheese melts",
			"Garnish with herbs if desired",
		},
		CookingTime: "10 minutes",
	},
	{
		Title:       "Fresh Garden Salad",
		Description: "A refreshing and colorful salad with a zesty dressing",
		Ingredients: []string{
			"4 cups mixed greens",
			"1 cucumber, sliced",
			"1 cup cherry tomatoes, halved",
			"1/4 red onion, thinly sliced",
			"2 tbsp olive oil",
			"1 tbsp lemon juice",
			"Salt and pepper to taste",
		},
		Instructions: []string{
			"Combine all vegetables in a large bowl",
			"Whisk together olive oil, lemon juice, salt and pepper",
			"Drizzle dressing over salad and toss to combine",
			"Serve immediately",
		},
		CookingTime: "5 minutes",
	},
}

// FallbackRecipes returns a copy of the sample batch with fresh IDs
func FallbackRecipes() []types.Recipe {
	out := make([]types.Recipe, 0, len(sampleRecipes))
	for _, r := range sampleRecipes {
		r.ID = uuid.New()
		r.Ingredients = append([]string(nil), r.Ingredients...)
		r.Instructions = append([]string(nil), r.Instructions...)
		out = append(out, r)
	}
	return out
}
