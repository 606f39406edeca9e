package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Credentials are the raw identity proofs carried by a request
type Credentials struct {
	Bearer    string
	SessionID string
}

// Identity is the outcome of resolving credentials. The zero value is unresolved.
type Identity struct {
	UserID   uuid.UUID
	Resolved bool
}

// Unresolved is the identity of a caller nobody vouches for
var Unresolved = Identity{}

// ResolvedIdentity returns a resolved identity for userID
func ResolvedIdentity(userID uuid.UUID) Identity {
	return Identity{UserID: userID, Resolved: true}
}

// IdentityResolver resolves a bearer token first and falls back to the session cookie
type IdentityResolver struct {
	tokens   TokenValidator
	sessions SessionStore
	logger   *zap.Logger
}

// NewIdentityResolver creates a resolver. sessions may be nil when cookie sessions are disabled.
func NewIdentityResolver(tokens TokenValidator, sessions SessionStore, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Resolve never fails; an unusable credential simply does not resolve
func (r *IdentityResolver) Resolve(ctx context.Context, creds Credentials) Identity {
	if creds.Bearer != "" {
		claims, err := r.tokens.ValidateToken(creds.Bearer)
		if err == nil && claims.UserID != uuid.Nil {
			return ResolvedIdentity(claims.UserID)
		}
		r.logger.Debug("bearer credential rejected", zap.Error(err))
	}

	if creds.SessionID != "" && r.sessions != nil {
		userID, err := r.sessions.Lookup(ctx, creds.SessionID)
		if err == nil && userID != uuid.Nil {
			return ResolvedIdentity(userID)
		}
		if err != nil && !errors.Is(err, ErrSessionNotFound) {
			r.logger.Warn("session lookup failed", zap.Error(err))
		}
	}

	return Unresolved
}
