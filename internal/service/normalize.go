package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

var codeFencePattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\r?\n?(.*?)```")

// cookingTime accepts either a string or a number of minutes
type cookingTime string

func (c *cookingTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*c = cookingTime(strings.TrimSpace(str))
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*c = cookingTime(strconv.FormatFloat(num, 'f', -1, 64) + " minutes")
		return nil
	}

	return fmt.Errorf("invalid cookingTime format")
}

// generatedRecipe is the record shape the prompt asks the provider for
type generatedRecipe struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	CookingTime  cookingTime `json:"cookingTime"`
	Image        string      `json:"image"`
}

func (g generatedRecipe) validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(g.Ingredients) == 0 {
		return fmt.Errorf("recipe %q has no ingredients", g.Title)
	}
	if len(g.Instructions) == 0 {
		return fmt.Errorf("recipe %q has no instructions", g.Title)
	}
	for _, s := range g.Ingredients {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("recipe %q has a blank ingredient", g.Title)
		}
	}
	for _, s := range g.Instructions {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("recipe %q has a blank instruction", g.Title)
		}
	}
	return nil
}

// NormalizeRecipes turns raw provider text into recipe records. Every record
// gets a fresh ID; IDs supplied by the provider are ignored. Anything that is
// not a non-empty list of complete recipe objects is reported as
// ErrMalformedGenerationResponse.
func NormalizeRecipes(raw string) ([]types.Recipe, error) {
	cleaned := cleanGeneratedText(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedGenerationResponse)
	}

	items, err := extractRecipeList(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGenerationResponse, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no recipes in response", ErrMalformedGenerationResponse)
	}

	recipes := make([]types.Recipe, 0, len(items))
	for i, item := range items {
		var g generatedRecipe
		if err := json.Unmarshal(item, &g); err != nil {
			return nil, fmt.Errorf("%w: recipe %d: %w", ErrMalformedGenerationResponse, i, err)
		}
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("%w: recipe %d: %w", ErrMalformedGenerationResponse, i, err)
		}
		recipes = append(recipes, types.Recipe{
			ID:           uuid.New(),
			Title:        strings.TrimSpace(g.Title),
			Description:  strings.TrimSpace(g.Description),
			Ingredients:  g.Ingredients,
			Instructions: g.Instructions,
			CookingTime:  string(g.CookingTime),
			Image:        strings.TrimSpace(g.Image),
		})
	}

	return recipes, nil
}

// cleanGeneratedText strips code fences and trailing commas
func cleanGeneratedText(raw string) string {
	text := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	return stripTrailingCommas(text)
}

// stripTrailingCommas drops commas that directly precede a closing bracket or
// brace. Commas inside string literals are kept.
func stripTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == ',':
			if next := nextNonSpace(text, i+1); next == ']' || next == '}' {
				continue
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// nextNonSpace returns the first non-whitespace byte at or after i, or 0
func nextNonSpace(text string, i int) byte {
	for ; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return text[i]
		}
	}
	return 0
}

// extractRecipeList parses text directly, then falls back to the first
// array of objects embedded in it.
func extractRecipeList(text string) ([]json.RawMessage, error) {
	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return recipeListFrom(parsed)
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '[' || nextNonSpace(text, i+1) != '{' {
			continue
		}
		var candidate json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&candidate); err != nil {
			continue
		}
		return recipeListFrom(candidate)
	}

	return nil, fmt.Errorf("no JSON array of recipes found")
}

func recipeListFrom(parsed json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(parsed)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var wrapper struct {
			Recipes json.RawMessage `json:"recipes"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, err
		}
		recipes := bytes.TrimSpace(wrapper.Recipes)
		if len(recipes) == 0 || recipes[0] != '[' {
			return nil, fmt.Errorf("object has no recipes array")
		}
		var items []json.RawMessage
		if err := json.Unmarshal(recipes, &items); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("response is neither an array nor an object")
	}
}
