package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/models"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// AccountService registers and authenticates users
type AccountService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
}

// AuthHandler serves signup, login and logout
type AuthHandler struct {
	accounts      AccountService
	sessions      service.SessionStore
	sessionTTL    time.Duration
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler. sessions may be nil, in which case
// only bearer tokens are issued.
func NewAuthHandler(accounts AccountService, sessions service.SessionStore, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		sessions:      sessions,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// Signup creates an account and signs it in
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "A valid email and a password of at least 8 characters are required")
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrUserExists) {
		middleware.AbortWithError(c, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h.signIn(c, http.StatusCreated, user)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		middleware.AbortWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h.signIn(c, http.StatusOK, user)
}

// Logout ends the cookie session, if any
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookieName); err == nil && h.sessions != nil {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			respondError(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) signIn(c *gin.Context, status int, user *models.User) {
	token, err := h.accounts.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.sessions != nil {
		sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		h.setSessionCookie(c, sessionID, int(h.sessionTTL.Seconds()))
	}

	c.JSON(status, types.AuthResponse{
		Token: token,
		User:  types.UserResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.secureCookies, true)
}
