package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/service"
)

// SessionCookieName is the cookie carrying the session ID
const SessionCookieName = "pantry_session"

const identityKey = "identity"

// ExtractCredentials reads the bearer token and session cookie from the request
func ExtractCredentials(c *gin.Context) service.Credentials {
	var creds service.Credentials

	authHeader := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
		creds.Bearer = strings.TrimSpace(token)
	}

	if sessionID, err := c.Cookie(SessionCookieName); err == nil {
		creds.SessionID = sessionID
	}

	return creds
}

// RequireIdentity rejects requests whose credentials do not resolve
func RequireIdentity(auth service.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.Resolve(c.Request.Context(), ExtractCredentials(c))
		if !identity.Resolved {
			AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id", identity.UserID.String())
		c.Next()
	}
}

// GetIdentity returns the identity stored by RequireIdentity
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return service.Unresolved, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok && identity.Resolved
}
