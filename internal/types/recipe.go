package types

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a generated recipe as exchanged with clients.
// DietaryPreferences and CreatedAt are only set once the recipe has been stored.
type Recipe struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Ingredients        []string   `json:"ingredients"`
	Instructions       []string   `json:"instructions"`
	CookingTime        string     `json:"cookingTime"`
	Image              string     `json:"image"`
	DietaryPreferences []string   `json:"dietaryPreferences,omitempty"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
}

// GenerateRequest is the body of a recipe generation call
type GenerateRequest struct {
	Ingredients        []string `json:"ingredients" validate:"required,min=1,dive,required"`
	DietaryPreferences []string `json:"dietaryPreferences" validate:"omitempty,dive,required"`
}

// GenerateResponse is returned by the generate endpoint. Note is set when
// fallback content was served.
type GenerateResponse struct {
	Recipes []Recipe `json:"recipes"`
	Note    string   `json:"note,omitempty"`
}

// HistoryResponse lists the caller's stored recipes, newest first
type HistoryResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// RecipeDetailResponse wraps a single stored recipe
type RecipeDetailResponse struct {
	Recipe Recipe `json:"recipe"`
}
