package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bridge/internal/auth"
)

const (
	ContextKeyWorkspaceID = "workspace_id"
	ContextKeyClaims      = "claims"
)

// WorkspaceAuth returns Gin middleware that validates the workspace token and
// checks that it was issued for the :id in the path. Browsers cannot set
// headers on websocket handshakes, so a token query parameter is accepted too.
func WorkspaceAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		if id := c.Param("id"); id != "" && id != claims.WorkspaceID.String() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "token was issued for another workspace"},
			})
			return
		}

		c.Set(ContextKeyWorkspaceID, claims.WorkspaceID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

// GetWorkspaceID extracts the authenticated workspace ID from the Gin context.
func GetWorkspaceID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyWorkspaceID)
	if !exists {
		return uuid.Nil, errors.New("workspace ID not found in context")
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid workspace ID type in context")
	}
	return id, nil
}
