// Package auth adapts the authentication provider boundary: it turns a bearer
// token into the acting user's identity and role. Login, registration and
// token issuance live with the identity provider, not here.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/devmatch/devmatch-backend/internal/models"
)

// Identity is what the core consumes: who is acting and under which role.
type Identity struct {
	UserID string
	Role   models.UserRole
}

func (id Identity) IsRecruiter() bool { return id.Role == models.RoleRecruiter }
func (id Identity) IsDeveloper() bool { return id.Role == models.RoleDeveloper }
func (id Identity) IsAdmin() bool     { return id.Role == models.RoleAdmin }

const identityKey = "identity"

// Middleware parses an Authorization bearer token when one is present and
// stores the resulting Identity on the request context. Requests without a
// token pass through anonymously; RequireAuth gates the protected routes.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, _ := claims["sub"].(string)
		roleClaim, _ := claims["role"].(string)
		role, valid := models.ParseUserRole(roleClaim)
		if sub == "" || !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		c.Set(identityKey, Identity{UserID: sub, Role: role})
		c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by Middleware, if any.
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// SetIdentity attaches an identity directly. Tests use it to act as a given
// user without minting tokens.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}
