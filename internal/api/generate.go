package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

const maxGenerateBodyBytes = 64 << 10

// RecipeGenerator runs the generation pipeline
type RecipeGenerator interface {
	Generate(ctx context.Context, creds service.Credentials, body []byte) (*service.GenerateResult, error)
}

// GenerateHandler serves POST /generate
type GenerateHandler struct {
	pipeline RecipeGenerator
}

// NewGenerateHandler creates a handler over pipeline
func NewGenerateHandler(pipeline RecipeGenerator) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

// RegisterRoutes mounts the generate route. Authentication happens inside
// the pipeline so that it precedes body validation.
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate", h.Generate)
}

// Generate handles a recipe generation request
func (h *GenerateHandler) Generate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxGenerateBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		// an unreadable body is left empty and rejected by validation
		body = nil
	}

	result, err := h.pipeline.Generate(c.Request.Context(), middleware.ExtractCredentials(c), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{
		Recipes: result.Recipes,
		Note:    result.Note,
	})
}
