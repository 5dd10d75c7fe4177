package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
)

const identityKey = "identity"

// requireAuth verifies the bearer token and stores the caller's identity on
// the request context. Handlers behind it can assume identityFrom succeeds.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token, authorization denied"})
			return
		}

		identity, err := s.issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}

func identityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}

	identity, ok := v.(auth.Identity)
	return identity, ok
}
