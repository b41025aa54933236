package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/auth"
)

const identityKey = "identity"

// RequireRole authenticates the bearer token and checks the role in one
// place, so no route duplicates its own auth branching. 401 means "log in
// again" (missing/invalid/expired), 403 means "you lack permission".
func RequireRole(gate *auth.Gate, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := gate.Authenticate(bearerToken(c))
		if err != nil {
			status := http.StatusUnauthorized
			kind := "missing_token"
			if errors.Is(err, auth.ErrExpiredToken) {
				kind = "expired_token"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": kind, "details": err.Error()})
			return
		}

		if err := auth.RequireRole(identity, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "insufficient_role",
				"details": err.Error(),
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by RequireRole. Zero value on
// unauthenticated routes.
func IdentityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
