package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/models"
)

func testimonialDetails(t *models.Testimonial) map[string]any {
	return map[string]any{"testimonialId": t.ID, "name": t.Name}
}

// listTestimonials handles GET /api/testimonials and GET /api/admin/testimonials
func (h *Handler) listTestimonials(c echo.Context) error {
	testimonials, err := h.store.ListTestimonials(c.Request().Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch testimonials")
	}
	return c.JSON(http.StatusOK, testimonials)
}

// getTestimonial handles GET /api/admin/testimonials/:id
func (h *Handler) getTestimonial(c echo.Context) error {
	t, err := h.store.GetTestimonial(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Testimonial not found", "Failed to fetch testimonial")
	}
	return c.JSON(http.StatusOK, t)
}

// createTestimonial handles POST /api/admin/testimonials
func (h *Handler) createTestimonial(c echo.Context) error {
	var t models.Testimonial
	if ok, err := bindBody(c, &t); !ok {
		return err
	}

	if err := h.store.CreateTestimonial(c.Request().Context(), &t); err != nil {
		return respondError(c, err, "", "Failed to create testimonial")
	}

	h.record(c, models.ActionCreateTestimonial, testimonialDetails(&t))
	return c.JSON(http.StatusCreated, t)
}

// updateTestimonial handles PUT /api/admin/testimonials/:id
func (h *Handler) updateTestimonial(c echo.Context) error {
	var patch models.TestimonialPatch
	if ok, err := bindBody(c, &patch); !ok {
		return err
	}

	t, err := h.store.UpdateTestimonial(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Testimonial not found", "Failed to update testimonial")
	}

	h.record(c, models.ActionUpdateTestimonial, testimonialDetails(t))
	return c.JSON(http.StatusOK, t)
}

// deleteTestimonial handles DELETE /api/admin/testimonials/:id
func (h *Handler) deleteTestimonial(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	t, err := h.store.GetTestimonial(ctx, id)
	if err != nil {
		return respondError(c, err, "Testimonial not found", "Failed to delete testimonial")
	}
	if err := h.store.DeleteTestimonial(ctx, id); err != nil {
		return respondError(c, err, "Testimonial not found", "Failed to delete testimonial")
	}

	h.record(c, models.ActionDeleteTestimonial, testimonialDetails(t))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
