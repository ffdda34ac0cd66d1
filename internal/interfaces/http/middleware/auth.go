package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tessera/internal/domain/user"
	"tessera/internal/infrastructure/auth"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

// Context keys set by RequireAuth.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserSID  = "user_sid"
	ContextKeyUserRole = "user_role"
)

type AuthMiddleware struct {
	issuer *auth.JWTIssuer
	logger logger.Interface
}

func NewAuthMiddleware(issuer *auth.JWTIssuer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		issuer: issuer,
		logger: logger,
	}
}

// RequireAuth verifies the bearer token and stores caller identity in the
// request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.issuer.Parse(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserSID, claims.UserSID)
		c.Set(ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated caller
// holds one of the given roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue := c.GetString(ContextKeyUserRole)
		role, err := user.ParseRole(roleValue)
		if err != nil || !role.OneOf(allowed...) {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user ID from the request context.
func CallerID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CallerIsAdmin reports whether the authenticated caller has the admin role.
func CallerIsAdmin(c *gin.Context) bool {
	role, err := user.ParseRole(c.GetString(ContextKeyUserRole))
	return err == nil && role == user.RoleAdmin
}
