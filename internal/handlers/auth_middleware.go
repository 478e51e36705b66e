package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/models"
)

// AccessGuard authenticates bearer tokens and enforces role allowlists.
// Token verification is self-contained; no store lookup happens per request.
type AccessGuard struct {
	tokens *auth.TokenIssuer
}

func NewAccessGuard(tokens *auth.TokenIssuer) *AccessGuard {
	return &AccessGuard{tokens: tokens}
}

// AuthMiddleware returns a Gin middleware that rejects requests without a
// valid bearer token and stashes the token's identity in the context.
func (ag *AccessGuard) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := ag.tokens.Verify(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRoleMiddleware checks the caller's role against an explicit
// allowlist. There is no implicit admin override: an admin reaches an
// endpoint only when the allowlist names the admin role.
func (ag *AccessGuard) RequireRoleMiddleware(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentUserRole(c)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "user role not found in context",
			})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: fmt.Sprintf("insufficient permissions, required role: %v", allowedRoles),
		})
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's id from the Gin context.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUserRole returns the authenticated user's role from the Gin context.
func CurrentUserRole(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}
