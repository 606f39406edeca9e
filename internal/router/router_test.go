package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/mocks"
	"github.com/pageza/pantry-chef/backend/internal/router"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/testdb"
)

func setupRouter(t *testing.T) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.NewSQLite(t)
	logger := zap.NewNop()
	m := metrics.New()
	authService := service.NewAuthService(db, "test-secret", time.Hour)
	resolver := service.NewIdentityResolver(authService, nil, logger)
	recipes := service.NewRecipeService(service.NewGormRecipeStore(db), nil, logger, m)
	pipeline := service.NewGenerationPipeline(resolver, new(mocks.MockGenerationClient), recipes, logger, m)

	r := router.SetupRouter(router.Dependencies{
		Logger:          logger,
		Metrics:         m,
		AllowedOrigins:  []string{"http://localhost:5173"},
		AuthHandler:     api.NewAuthHandler(authService, nil, time.Hour, false),
		GenerateHandler: api.NewGenerateHandler(pipeline),
		RecipeHandler:   api.NewRecipeHandler(recipes, resolver),
	})
	return r, m
}

func TestRoutes(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/api/generate", http.StatusUnauthorized},
		{http.MethodGet, "/api/history", http.StatusUnauthorized},
		{http.MethodGet, "/api/recipe/123", http.StatusUnauthorized},
		{http.MethodPost, "/api/auth/login", http.StatusBadRequest},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestMetricsEndpointExposesPipelineCollectors(t *testing.T) {
	r, _ := setupRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/history", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), `route="/api/history"`)
}

func TestMetricsCountRecoveredPanics(t *testing.T) {
	r, m := setupRouter(t)
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")))
}
