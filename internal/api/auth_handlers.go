package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/auth"
	"islandproperties-backend/internal/models"
)

type loginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// adminSummary is the public view of an admin account
type adminSummary struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func summarize(u *models.AdminUser) adminSummary {
	return adminSummary{ID: u.ID, Email: u.Email, Role: u.Role}
}

// login handles POST /api/admin/login
func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Email and password are required",
		})
	}

	resp, err := h.auth.Login(c.Request().Context(), auth.LoginRequest{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	}, auth.ClientFromContext(c))
	if err != nil {
		var locked *auth.LockedError
		switch {
		case errors.As(err, &locked):
			return c.JSON(http.StatusLocked, map[string]any{
				"message":     "Account is temporarily locked due to multiple failed login attempts",
				"lockedUntil": locked.Until,
			})
		case errors.Is(err, auth.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Email and password are required",
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"message": "Invalid credentials",
			})
		default:
			c.Logger().Error("login error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"message": "Internal server error",
			})
		}
	}

	// Set token in cookie (HttpOnly for security)
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(resp.TTL / time.Second),
	})

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"user":      summarize(resp.User),
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
	})
}

// logout handles POST /api/admin/logout
func (h *Handler) logout(c echo.Context) error {
	admin := auth.GetAdminFromContext(c)
	token := auth.GetTokenFromContext(c)

	if err := h.auth.Logout(c.Request().Context(), admin, token, auth.ClientFromContext(c)); err != nil {
		c.Logger().Error("logout error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Logout failed",
		})
	}

	// Clear cookie
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// me handles GET /api/admin/me
func (h *Handler) me(c echo.Context) error {
	admin := auth.GetAdminFromContext(c)
	return c.JSON(http.StatusOK, map[string]any{
		"user":      summarize(admin),
		"expiresAt": auth.GetSessionFromContext(c).ExpiresAt,
	})
}
