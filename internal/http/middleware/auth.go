package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextPersonID holds the authenticated person id on the gin context.
const ContextPersonID = "person_id"

// Identifier resolves a bearer token to a person that still exists. It
// returns service.ErrInvalidToken for bad tokens and for deleted people.
type Identifier interface {
	Identify(ctx context.Context, token string) (*domain.Person, error)
}

// OptionalAuth sets ContextPersonID when a valid bearer token is present.
// No header passes through anonymously; a malformed or invalid one, or one
// whose person no longer exists, is a 401.
func OptionalAuth(ids Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c)
			return
		}
		person, err := ids.Identify(c.Request.Context(), strings.TrimSpace(token))
		if errors.Is(err, service.ErrInvalidToken) {
			abortUnauthorized(c)
			return
		}
		if err != nil {
			logger.WithContext(c.Request.Context()).Error("identify bearer token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "internal error",
			})
			return
		}

		c.Set(ContextPersonID, person.ID)
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextPersonID) == "" {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "unauthorized",
	})
}
