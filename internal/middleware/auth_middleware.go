package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	IdentityKey = "identity"
)

// JWTAuthMiddleware verifies the bearer token on every request and stores the
// caller's identity in the gin context. Nothing is cached between requests.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "Unauthorized"})
			return
		}

		identity, err := auth.ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// UserID returns the id JWTAuthMiddleware stored for this request.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

type UserStore interface {
	EnsureExists(ctx context.Context, user *model.User) error
}

// KnownUsers lets EnsureUser skip the insert for users it has already written.
type KnownUsers interface {
	Seen(ctx context.Context, userID string) (bool, error)
	Remember(ctx context.Context, userID string) error
}

// EnsureUser creates the users row for the verified caller the first time they
// show up. known may be nil.
func EnsureUser(users UserStore, known KnownUsers) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(IdentityKey)
		identity, ok := v.(auth.Identity)
		if !ok || identity.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()

		if known != nil {
			seen, err := known.Seen(ctx, identity.UserID)
			if err != nil {
				log.Printf("⚠️  known-user lookup failed, falling back to upsert: %v", err)
			}
			if seen {
				c.Next()
				return
			}
		}

		user := &model.User{ID: identity.UserID, Email: identity.Email, Name: identity.Name}
		if err := users.EnsureExists(ctx, user); err != nil {
			log.Printf("❌ ensure user %s: %v", identity.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"err": "Internal Server Error"})
			return
		}

		if known != nil {
			if err := known.Remember(ctx, identity.UserID); err != nil {
				log.Printf("⚠️  remember user %s: %v", identity.UserID, err)
			}
		}
		c.Next()
	}
}
