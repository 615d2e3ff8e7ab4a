package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Lari-oliv/olive-beauty/errors"
	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/services"
)

const (
	UserContextKey  = "userID"
	RoleContextKey  = "role"
	EmailContextKey = "email"

	// AccessTokenCookie is read when no Authorization header is sent, which
	// is how browsers authenticate the websocket feed.
	AccessTokenCookie = "access_token"
)

// TokenParser validates access tokens.
type TokenParser interface {
	Parse(token string) (*services.Claims, error)
}

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's id and role in the context.
func AuthRequired(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			apperrors.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			apperrors.Abort(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserContextKey, claims.UserID)
		c.Set(RoleContextKey, claims.Role)
		c.Set(EmailContextKey, claims.Email)
		c.Next()
	}
}

// AdminOnly must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			apperrors.Abort(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// GetUserID returns the authenticated caller's id.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get(RoleContextKey)
	r, ok := role.(models.Role)
	return ok && r == models.RoleAdmin
}
