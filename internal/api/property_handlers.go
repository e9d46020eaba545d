package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
)

func (h *Handler) respondProperties(c echo.Context, filter models.PropertyFilter) error {
	properties, err := h.store.ListProperties(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch properties")
	}
	return c.JSON(http.StatusOK, properties)
}

// listProperties handles GET /api/properties
func (h *Handler) listProperties(c echo.Context) error {
	return h.respondProperties(c, models.PropertyFilter{})
}

// listHotProperties handles GET /api/properties/hot
func (h *Handler) listHotProperties(c echo.Context) error {
	return h.respondProperties(c, models.PropertyFilter{Status: models.StatusHot})
}

// listFeaturedProperties handles GET /api/properties/featured
func (h *Handler) listFeaturedProperties(c echo.Context) error {
	return h.respondProperties(c, models.PropertyFilter{Status: models.StatusFeatured})
}

// listPropertiesByCategory handles GET /api/properties/category/:category
func (h *Handler) listPropertiesByCategory(c echo.Context) error {
	return h.respondProperties(c, models.PropertyFilter{Category: models.Category(c.Param("category"))})
}

// adminListProperties handles GET /api/admin/properties?category=&status=&search=
func (h *Handler) adminListProperties(c echo.Context) error {
	return h.respondProperties(c, models.PropertyFilter{
		Category: models.Category(c.QueryParam("category")),
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
	})
}

// getProperty handles GET /api/properties/:id and GET /api/admin/properties/:id
func (h *Handler) getProperty(c echo.Context) error {
	property, err := h.store.GetProperty(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Property not found", "Failed to fetch property")
	}
	return c.JSON(http.StatusOK, property)
}

func propertyDetails(p *models.Property) map[string]any {
	return map[string]any{
		"propertyId": p.ID,
		"title":      p.Title,
		"category":   p.Category,
	}
}

// createProperty handles POST /api/admin/properties
func (h *Handler) createProperty(c echo.Context) error {
	var property models.Property
	if ok, err := bindBody(c, &property); !ok {
		return err
	}

	if err := h.store.CreateProperty(c.Request().Context(), &property); err != nil {
		return respondError(c, err, "", "Failed to create property")
	}

	h.record(c, models.ActionCreateProperty, propertyDetails(&property))
	return c.JSON(http.StatusCreated, property)
}

// updateProperty handles PUT /api/admin/properties/:id
func (h *Handler) updateProperty(c echo.Context) error {
	var patch models.PropertyPatch
	if ok, err := bindBody(c, &patch); !ok {
		return err
	}

	property, err := h.store.UpdateProperty(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Property not found", "Failed to update property")
	}

	h.record(c, models.ActionUpdateProperty, propertyDetails(property))
	return c.JSON(http.StatusOK, property)
}

// deleteProperty handles DELETE /api/admin/properties/:id
func (h *Handler) deleteProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	property, err := h.store.GetProperty(ctx, id)
	if err != nil {
		return respondError(c, err, "Property not found", "Failed to delete property")
	}
	if err := h.store.DeleteProperty(ctx, id); err != nil {
		return respondError(c, err, "Property not found", "Failed to delete property")
	}

	h.record(c, models.ActionDeleteProperty, propertyDetails(property))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Bulk actions
const (
	BulkDelete    = "delete"
	BulkFeature   = "feature"
	BulkUnfeature = "unfeature"
	BulkHot       = "hot"
	BulkUnhot     = "unhot"
)

type bulkRequest struct {
	Action      string   `json:"action" validate:"required,oneof=delete feature unfeature hot unhot"`
	PropertyIDs []string `json:"propertyIds" validate:"required"`
}

type bulkResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// bulkProperties handles POST /api/admin/properties/bulk. Each id is
// processed on its own; one failure does not stop the batch. A single log
// entry covers the whole batch.
func (h *Handler) bulkProperties(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid bulk operation request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid bulk operation request"})
	}

	results := make([]bulkResult, 0, len(req.PropertyIDs))
	for _, id := range req.PropertyIDs {
		err := h.applyBulk(c, req.Action, id)
		switch {
		case err == nil:
			results = append(results, bulkResult{ID: id, Success: true})
		case errors.Is(err, database.ErrNotFound):
			results = append(results, bulkResult{ID: id, Error: "Property not found"})
		default:
			c.Logger().Error("bulk ", req.Action, " error: ", err)
			results = append(results, bulkResult{ID: id, Error: err.Error()})
		}
	}

	h.record(c, models.ActionBulkPropertyOperation, map[string]any{
		"action":      req.Action,
		"propertyIds": req.PropertyIDs,
		"results":     results,
	})
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) applyBulk(c echo.Context, action, id string) error {
	ctx := c.Request().Context()

	var patch models.PropertyPatch
	switch action {
	case BulkDelete:
		// Deleting is a no-op in the store; a missing id is still a failure here.
		if _, err := h.store.GetProperty(ctx, id); err != nil {
			return err
		}
		return h.store.DeleteProperty(ctx, id)
	case BulkFeature:
		patch.IsFeatured = models.Set(true)
	case BulkUnfeature:
		patch.IsFeatured = models.Set(false)
	case BulkHot:
		patch.IsHot = models.Set(true)
	case BulkUnhot:
		patch.IsHot = models.Set(false)
	}
	_, err := h.store.UpdateProperty(ctx, id, patch)
	return err
}
