package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/mocks"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/testdb"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memorySessions is an in-process SessionStore
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]uuid.UUID{}}
}

func (m *memorySessions) Create(_ context.Context, userID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.sessions[id] = userID
	return id, nil
}

func (m *memorySessions) Lookup(_ context.Context, sessionID string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.sessions[sessionID]
	if !ok {
		return uuid.Nil, service.ErrSessionNotFound
	}
	return userID, nil
}

func (m *memorySessions) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	auth     *service.AuthService
	sessions *memorySessions
	client   *mocks.MockGenerationClient
	recipes  *service.RecipeService
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testdb.NewSQLite(t)
	logger := zap.NewNop()
	m := metrics.New()

	authService := service.NewAuthService(db, "test-secret", time.Hour)
	sessions := newMemorySessions()
	resolver := service.NewIdentityResolver(authService, sessions, logger)
	client := new(mocks.MockGenerationClient)
	recipes := service.NewRecipeService(service.NewGormRecipeStore(db), nil, logger, m)
	pipeline := service.NewGenerationPipeline(resolver, client, recipes, logger, m)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.GET("/health", api.HealthCheck)
	group := router.Group("/api")
	api.NewAuthHandler(authService, sessions, time.Hour, false).RegisterRoutes(group)
	api.NewGenerateHandler(pipeline).RegisterRoutes(group)
	api.NewRecipeHandler(recipes, resolver).RegisterRoutes(group)

	return &testApp{
		router:   router,
		db:       db,
		auth:     authService,
		sessions: sessions,
		client:   client,
		recipes:  recipes,
	}
}

// signup registers an account through the API and returns its token and session cookie
func (a *testApp) signup(t *testing.T, email string) (types.AuthResponse, *http.Cookie) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp, sessionCookie(w)
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(cookie *http.Cookie) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value}) }
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}
