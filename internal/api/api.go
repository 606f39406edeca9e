package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Pantry Chef API is running",
	})
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		middleware.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrInvalidInput):
		middleware.AbortWithError(c, http.StatusBadRequest, "Ingredients are required and must be an array")
	case errors.Is(err, service.ErrRecipeNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "Recipe not found")
	default:
		_ = c.Error(err)
		middleware.AbortWithError(c, http.StatusInternalServerError, "Unknown")
	}
}
