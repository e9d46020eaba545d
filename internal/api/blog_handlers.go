package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/models"
)

func blogDetails(p *models.BlogPost) map[string]any {
	return map[string]any{"postId": p.ID, "title": p.Title}
}

// listPublishedBlogPosts handles GET /api/blog-posts
func (h *Handler) listPublishedBlogPosts(c echo.Context) error {
	posts, err := h.store.ListBlogPosts(c.Request().Context(), models.BlogPostFilter{Status: models.BlogStatusPublished})
	if err != nil {
		return respondError(c, err, "", "Failed to fetch blog posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// getPublishedBlogPost handles GET /api/blog-posts/:id. Drafts and
// scheduled posts are reported as missing.
func (h *Handler) getPublishedBlogPost(c echo.Context) error {
	post, err := h.store.GetBlogPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Blog post not found", "Failed to fetch blog post")
	}
	if post.Status != models.BlogStatusPublished {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog post not found"})
	}
	return c.JSON(http.StatusOK, post)
}

// adminListBlogPosts handles GET /api/admin/blog-posts?status=
func (h *Handler) adminListBlogPosts(c echo.Context) error {
	filter := models.BlogPostFilter{Status: models.BlogStatus(c.QueryParam("status"))}
	posts, err := h.store.ListBlogPosts(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch blog posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// adminGetBlogPost handles GET /api/admin/blog-posts/:id
func (h *Handler) adminGetBlogPost(c echo.Context) error {
	post, err := h.store.GetBlogPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Blog post not found", "Failed to fetch blog post")
	}
	return c.JSON(http.StatusOK, post)
}

// createBlogPost handles POST /api/admin/blog-posts
func (h *Handler) createBlogPost(c echo.Context) error {
	var post models.BlogPost
	if ok, err := bindBody(c, &post); !ok {
		return err
	}

	if err := h.store.CreateBlogPost(c.Request().Context(), &post); err != nil {
		return respondError(c, err, "", "Failed to create blog post")
	}

	h.record(c, models.ActionCreateBlogPost, blogDetails(&post))
	return c.JSON(http.StatusCreated, post)
}

// updateBlogPost handles PUT /api/admin/blog-posts/:id
func (h *Handler) updateBlogPost(c echo.Context) error {
	var patch models.BlogPostPatch
	if ok, err := bindBody(c, &patch); !ok {
		return err
	}

	post, err := h.store.UpdateBlogPost(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Blog post not found", "Failed to update blog post")
	}

	h.record(c, models.ActionUpdateBlogPost, blogDetails(post))
	return c.JSON(http.StatusOK, post)
}

// deleteBlogPost handles DELETE /api/admin/blog-posts/:id
func (h *Handler) deleteBlogPost(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	post, err := h.store.GetBlogPost(ctx, id)
	if err != nil {
		return respondError(c, err, "Blog post not found", "Failed to delete blog post")
	}
	if err := h.store.DeleteBlogPost(ctx, id); err != nil {
		return respondError(c, err, "Blog post not found", "Failed to delete blog post")
	}

	h.record(c, models.ActionDeleteBlogPost, blogDetails(post))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
