package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/audit"
	"islandproperties-backend/internal/auth"
	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
)

// Health check handler
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondError maps repository and validation errors onto the API's status
// codes. Unexpected errors are logged and reported with the generic failure
// message only.
func respondError(c echo.Context, err error, notFound, failure string) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, database.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": notFound})
	case errors.Is(err, database.ErrDuplicateSlug), errors.Is(err, database.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		c.Logger().Error(failure, " error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": failure})
	}
}

// bindBody decodes the request body into v. A malformed body is answered
// with 400 and reported as handled.
func bindBody(c echo.Context, v any) (ok bool, err error) {
	if bindErr := c.Bind(v); bindErr != nil {
		msg := "invalid request body"
		var verr *models.ValidationError
		if errors.As(bindErr, &verr) {
			msg = verr.Error()
		}
		return false, c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	return true, nil
}

// record writes a security log entry attributed to the session's admin. A
// failed write is logged by the audit logger and does not fail the request.
func (h *Handler) record(c echo.Context, action string, details map[string]any) {
	entry := audit.Entry{
		Action:    action,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Details:   details,
	}
	if admin := auth.GetAdminFromContext(c); admin != nil {
		entry.AdminUserID = admin.ID
	}
	h.audit.Record(c.Request().Context(), entry)
}
