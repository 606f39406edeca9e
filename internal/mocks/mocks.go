package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// MockGenerationClient is a mock implementation of service.GenerationClient
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockRecipeStore is a mock implementation of service.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) Create(ctx context.Context, row *model.Recipe) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockRecipeStore) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Recipe, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeStore) GetForOwner(ctx context.Context, id, owner uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// MockRecipePersister is a mock implementation of service.RecipePersister
type MockRecipePersister struct {
	mock.Mock
}

func (m *MockRecipePersister) Persist(ctx context.Context, owner uuid.UUID, recipes []types.Recipe, dietaryPreferences []string, createdAt time.Time) error {
	args := m.Called(ctx, owner, recipes, dietaryPreferences, createdAt)
	return args.Error(0)
}

// MockTokenValidator is a mock token validator for testing
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockSessionStore is a mock implementation of service.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Lookup(ctx context.Context, sessionID string) (uuid.UUID, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// StaticAuthenticator resolves every request to the same identity
type StaticAuthenticator struct {
	Identity service.Identity
	Calls    int
}

func (a *StaticAuthenticator) Resolve(ctx context.Context, creds service.Credentials) service.Identity {
	a.Calls++
	return a.Identity
}
