package middleware

import (
	"context"
	"errors"
	"strings"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key of the authenticated user.
const CurrentUserKey = "currentUser"

var errUserNotFound = apperror.New(apperror.KindInvalidToken, "User not found")

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup loads the user a token refers to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator implements the required and optional auth modes.
type Authenticator struct {
	tokens TokenVerifier
	users  UserLookup
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens TokenVerifier, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// RequireAuth rejects the request unless it carries a valid bearer token of
// an existing user.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, apperror.ErrAuthRequired)
			return
		}

		user, err := a.resolve(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and never
// rejects the request.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := a.resolve(c.Request.Context(), token); err == nil {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

func (a *Authenticator) resolve(ctx context.Context, token string) (*models.User, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// CurrentUser returns the user attached by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
