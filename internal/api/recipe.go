package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// RecipeReader reads an owner's stored recipes
type RecipeReader interface {
	History(ctx context.Context, owner uuid.UUID) ([]types.Recipe, error)
	Get(ctx context.Context, owner uuid.UUID, id string) (*types.Recipe, error)
}

// RecipeHandler serves the history and recipe detail routes
type RecipeHandler struct {
	recipes RecipeReader
	auth    service.Authenticator
}

// NewRecipeHandler creates a handler reading from recipes
func NewRecipeHandler(recipes RecipeReader, auth service.Authenticator) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	protected := router.Group("")
	protected.Use(middleware.RequireIdentity(h.auth))
	{
		protected.GET("/history", h.History)
		protected.GET("/recipe/:id", h.GetRecipe)
	}
}

// History lists the caller's recipes, newest first
func (h *RecipeHandler) History(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	recipes, err := h.recipes.History(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.HistoryResponse{Recipes: recipes})
}

// GetRecipe returns one of the caller's recipes
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeDetailResponse{Recipe: *recipe})
}
