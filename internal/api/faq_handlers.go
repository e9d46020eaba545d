package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/models"
)

// faqRequest is the create payload. isActive defaults to true when omitted.
type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func faqDetails(f *models.FAQ) map[string]any {
	return map[string]any{"faqId": f.ID, "question": f.Question}
}

// listActiveFAQs handles GET /api/faqs
func (h *Handler) listActiveFAQs(c echo.Context) error {
	faqs, err := h.store.ListFAQs(c.Request().Context(), models.FAQFilter{ActiveOnly: true})
	if err != nil {
		return respondError(c, err, "", "Failed to fetch FAQs")
	}
	return c.JSON(http.StatusOK, faqs)
}

// adminListFAQs handles GET /api/admin/faqs
func (h *Handler) adminListFAQs(c echo.Context) error {
	faqs, err := h.store.ListFAQs(c.Request().Context(), models.FAQFilter{})
	if err != nil {
		return respondError(c, err, "", "Failed to fetch FAQs")
	}
	return c.JSON(http.StatusOK, faqs)
}

// getFAQ handles GET /api/admin/faqs/:id
func (h *Handler) getFAQ(c echo.Context) error {
	f, err := h.store.GetFAQ(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "FAQ not found", "Failed to fetch FAQ")
	}
	return c.JSON(http.StatusOK, f)
}

// createFAQ handles POST /api/admin/faqs
func (h *Handler) createFAQ(c echo.Context) error {
	var req faqRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	f := &models.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Order:    req.Order,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := h.store.CreateFAQ(c.Request().Context(), f); err != nil {
		return respondError(c, err, "", "Failed to create FAQ")
	}

	h.record(c, models.ActionCreateFAQ, faqDetails(f))
	return c.JSON(http.StatusCreated, f)
}

// updateFAQ handles PUT /api/admin/faqs/:id
func (h *Handler) updateFAQ(c echo.Context) error {
	var patch models.FAQPatch
	if ok, err := bindBody(c, &patch); !ok {
		return err
	}

	f, err := h.store.UpdateFAQ(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "FAQ not found", "Failed to update FAQ")
	}

	h.record(c, models.ActionUpdateFAQ, faqDetails(f))
	return c.JSON(http.StatusOK, f)
}

// deleteFAQ handles DELETE /api/admin/faqs/:id
func (h *Handler) deleteFAQ(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	f, err := h.store.GetFAQ(ctx, id)
	if err != nil {
		return respondError(c, err, "FAQ not found", "Failed to delete FAQ")
	}
	if err := h.store.DeleteFAQ(ctx, id); err != nil {
		return respondError(c, err, "FAQ not found", "Failed to delete FAQ")
	}

	h.record(c, models.ActionDeleteFAQ, faqDetails(f))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
