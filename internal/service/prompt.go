package service

import (
	"fmt"
	"strings"
)

// TargetRecipeCount is the size of every batch returned to a caller
const TargetRecipeCount = 3

const chefSystemPrompt = "You are a professional chef specialized in creating delicious, practical recipes from available ingredients."

// BuildRecipePrompt renders the user prompt for a generation call. The output
// depends only on its arguments.
func BuildRecipePrompt(ingredients, dietaryPreferences []string) string {
	var b strings.Builder

	b.WriteString("Create ")
	if len(dietaryPreferences) > 0 {
		b.WriteString(strings.Join(dietaryPreferences, ", "))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "recipes using some or all of these ingredients: %s.\n\n", strings.Join(ingredients, ", "))

	b.WriteString(`For each recipe, provide:
1. Recipe title
2. Short description
3. List of all ingredients with measurements
4. Step-by-step preparation instructions
5. An estimated cooking time

`)
	fmt.Fprintf(&b, "Return exactly %d recipes as a JSON array of recipe objects, wrapped in an object under the key \"recipes\":\n", TargetRecipeCount)
	b.WriteString(`{
  "recipes": [
    {
      "title": "Recipe Name",
      "description": "Brief description",
      "ingredients": ["Ingredient 1 with measurement", "Ingredient 2 with measurement"],
      "instructions": ["Step 1", "Step 2"],
      "cookingTime": "Time in minutes",
      "image": "URL to an image (can be empty)"
    }
  ]
}

Use exactly these field names. Make the recipes practical, delicious, and suitable for home cooking.`)

	return b.String()
}
