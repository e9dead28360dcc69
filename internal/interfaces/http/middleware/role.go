package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when the role check fails (optional)
	OnDenied func(c *gin.Context, requiredRoles []string)
}

// RequireRole creates middleware that requires the authenticated user to
// hold one of the given roles. The JWT middleware must run first so the
// role claim is available in the context.
func RequireRole(roles ...string) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			denyRole(c, cfg, roles, "missing role claim")
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		denyRole(c, cfg, roles, "role not permitted")
	}
}

func denyRole(c *gin.Context, cfg RoleConfig, requiredRoles []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.String("path", c.Request.URL.Path),
			zap.Strings("required_roles", requiredRoles),
			zap.String("role", GetJWTRole(c)),
			zap.String("reason", reason),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredRoles)
		return
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
}
