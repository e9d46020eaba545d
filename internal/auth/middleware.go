package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/models"
)

// Context keys for storing admin data
const (
	ContextKeyAdmin   = "admin"
	ContextKeySession = "session"
	ContextKeyToken   = "token"
)

// CookieName is the cookie carrying the session token
const CookieName = "adminToken"

// RequireAuth middleware checks for valid authentication
func RequireAuth(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			admin, session, err := authSvc.ValidateToken(c.Request().Context(), token)
			if errors.Is(err, ErrUnauthorized) {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid or expired session",
				})
			}
			if err != nil {
				c.Logger().Error("validate session error: ", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "internal server error",
				})
			}

			// Store admin and session in context for handlers
			c.Set(ContextKeyAdmin, admin)
			c.Set(ContextKeySession, session)
			c.Set(ContextKeyToken, token)

			return next(c)
		}
	}
}

// RequireRole middleware checks for specific admin roles
// Must be used after RequireAuth
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := GetAdminFromContext(c)
			if admin == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			// Check if admin's role is in allowed roles
			for _, role := range roles {
				if admin.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "insufficient permissions",
			})
		}
	}
}

// RequireSuperAdmin is a convenience middleware that requires the super_admin role
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleSuperAdmin)
}

// TokenFromRequest extracts the session token from the request
func TokenFromRequest(c echo.Context) string {
	// Try Authorization header first (Bearer token)
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token
		}
	}

	// Fall back to the cookie
	cookie, err := c.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// GetAdminFromContext retrieves the authenticated admin from the context
func GetAdminFromContext(c echo.Context) *models.AdminUser {
	admin, ok := c.Get(ContextKeyAdmin).(*models.AdminUser)
	if !ok {
		return nil
	}
	return admin
}

// GetSessionFromContext retrieves the current session from the context
func GetSessionFromContext(c echo.Context) *models.Session {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// GetTokenFromContext retrieves the token the request authenticated with
func GetTokenFromContext(c echo.Context) string {
	token, _ := c.Get(ContextKeyToken).(string)
	return token
}

// ClientFromContext describes the caller for the security log
func ClientFromContext(c echo.Context) ClientInfo {
	return ClientInfo{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
