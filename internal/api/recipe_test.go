package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

func storeRecipes(t *testing.T, app *testApp, owner uuid.UUID, createdAt time.Time, titles ...string) []types.Recipe {
	t.Helper()
	batch := make([]types.Recipe, 0, len(titles))
	for _, title := range titles {
		batch = append(batch, types.Recipe{
			ID:           uuid.New(),
			Title:        title,
			Ingredients:  []string{"egg"},
			Instructions: []string{"Cook"},
			CookingTime:  "5 minutes",
		})
	}
	require.NoError(t, app.recipes.Persist(context.Background(), owner, batch, []string{"Vegetarian"}, createdAt))
	return batch
}

func TestHistory(t *testing.T) {
	app := setupTestApp(t)
	alice, _ := app.signup(t, "alice@example.com")
	bob, _ := app.signup(t, "bob@example.com")

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	storeRecipes(t, app, alice.User.ID, base, "first")
	storeRecipes(t, app, alice.User.ID, base.Add(time.Hour), "second")
	storeRecipes(t, app, bob.User.ID, base, "bob's")

	w := app.do(t, http.MethodGet, "/api/history", nil, withBearer(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "second", resp.Recipes[0].Title)
	assert.Equal(t, "first", resp.Recipes[1].Title)
	assert.Equal(t, []string{"Vegetarian"}, resp.Recipes[0].DietaryPreferences)
	require.NotNil(t, resp.Recipes[0].CreatedAt)
}

func TestHistoryEmpty(t *testing.T) {
	app := setupTestApp(t)
	auth, _ := app.signup(t, "cook@example.com")

	w := app.do(t, http.MethodGet, "/api/history", nil, withBearer(auth.Token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())
}

func TestHistoryRequiresIdentity(t *testing.T) {
	app := setupTestApp(t)
	w := app.do(t, http.MethodGet, "/api/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRecipe(t *testing.T) {
	app := setupTestApp(t)
	alice, _ := app.signup(t, "alice@example.com")
	bob, _ := app.signup(t, "bob@example.com")
	stored := storeRecipes(t, app, alice.User.ID, time.Now().UTC(), "omelette")

	w := app.do(t, http.MethodGet, "/api/recipe/"+stored[0].ID.String(), nil, withBearer(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stored[0].ID, resp.Recipe.ID)
	assert.Equal(t, "omelette", resp.Recipe.Title)

	tests := []struct {
		name  string
		id    string
		token string
	}{
		{name: "someone else's recipe", id: stored[0].ID.String(), token: bob.Token},
		{name: "unknown id", id: uuid.NewString(), token: alice.Token},
		{name: "malformed id", id: "not-a-uuid", token: alice.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodGet, "/api/recipe/"+tt.id, nil, withBearer(tt.token))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"Recipe not found"}`, w.Body.String())
		})
	}
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)
	w := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
