package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/pkg/response"
	"github.com/scamwatch/api-go/internal/pkg/token"
)

const userContextKey = "user"

// UserStore is the subset of Repository the middleware needs; tests
// substitute an in-memory implementation.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return authHeader
}

func loadUser(c *gin.Context, store UserStore, secret string) *User {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil
	}

	claims, err := token.Validate(tokenString, secret)
	if err != nil {
		return nil
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil
	}

	user, err := store.GetByID(c.Request.Context(), id)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

// Authenticate requires a valid token for an active account.
func Authenticate(store UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := loadUser(c, store, cfg.JWTSecret)
		if user == nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthenticate attaches the user when a valid token is present
// but never blocks anonymous requests.
func OptionalAuthenticate(store UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := loadUser(c, store, cfg.JWTSecret); user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin must run after Authenticate.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsSuperAdmin() {
			response.Forbidden(c, "Super admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by the middleware.
func CurrentUser(c *gin.Context) (*User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*User)
	return user, ok
}
