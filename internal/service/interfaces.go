package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// GenerationClient sends a prompt to the text-generation provider and returns its raw reply
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RecipeStore is the datastore's read/write contract for recipe rows
type RecipeStore interface {
	Create(ctx context.Context, row *model.Recipe) error
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Recipe, error)
	GetForOwner(ctx context.Context, id, owner uuid.UUID) (*model.Recipe, error)
}

// RecipePersister writes a generated batch on behalf of an owner
type RecipePersister interface {
	Persist(ctx context.Context, owner uuid.UUID, recipes []types.Recipe, dietaryPreferences []string, createdAt time.Time) error
}

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// SessionStore maps session cookie values to user IDs
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Lookup(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

// Authenticator resolves request credentials to a caller identity
type Authenticator interface {
	Resolve(ctx context.Context, creds Credentials) Identity
}

// ImageURLResolver turns a stored image reference into a URL a browser can load
type ImageURLResolver interface {
	Resolve(ctx context.Context, image string) string
}
