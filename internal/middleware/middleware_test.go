package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/mocks"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestExtractCredentials(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   service.Credentials
	}{
		{name: "none", want: service.Credentials{}},
		{name: "bearer", header: "Bearer abc.def", want: service.Credentials{Bearer: "abc.def"}},
		{name: "lowercase scheme", header: "bearer abc", want: service.Credentials{Bearer: "abc"}},
		{name: "basic is ignored", header: "Basic dXNlcjpwYXNz", want: service.Credentials{}},
		{name: "scheme only", header: "Bearer", want: service.Credentials{}},
		{name: "cookie", cookie: "sess-1", want: service.Credentials{SessionID: "sess-1"}},
		{name: "both", header: "Bearer tok", cookie: "sess-1", want: service.Credentials{Bearer: "tok", SessionID: "sess-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: tt.cookie})
			}

			assert.Equal(t, tt.want, middleware.ExtractCredentials(c))
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	user := uuid.New()

	t.Run("resolved", func(t *testing.T) {
		auth := &mocks.StaticAuthenticator{Identity: service.ResolvedIdentity(user)}
		router := gin.New()
		router.GET("/me", middleware.RequireIdentity(auth), func(c *gin.Context) {
			identity, ok := middleware.GetIdentity(c)
			require.True(t, ok)
			c.String(http.StatusOK, identity.UserID.String())
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.String(), w.Body.String())
		assert.Equal(t, 1, auth.Calls)
	})

	t.Run("unresolved", func(t *testing.T) {
		auth := &mocks.StaticAuthenticator{Identity: service.Unresolved}
		reached := false
		router := gin.New()
		router.GET("/me", middleware.RequireIdentity(auth), func(c *gin.Context) { reached = true })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Unauthorized", body.Error)
	})
}

func TestGetIdentityWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	identity, ok := middleware.GetIdentity(c)
	assert.False(t, ok)
	assert.Equal(t, service.Unresolved, identity)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recovered", logs.All()[0].Message)
}

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(zap.New(core), "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Client error", entry.Message)
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusNotFound), entry.ContextMap()["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, logs.Len())
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(middleware.Metrics(m))
	router.GET("/api/recipe/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipe/"+id, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/recipe/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CORS([]string{"http://localhost:5173"}))
	router.GET("/api/history", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/history", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
