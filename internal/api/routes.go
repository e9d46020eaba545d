package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"islandproperties-backend/internal/audit"
	"islandproperties-backend/internal/auth"
	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
)

// Handler serves the HTTP API
type Handler struct {
	store        database.Store
	auth         *auth.Service
	audit        *audit.Logger
	cookieSecure bool
}

// Options wires a Handler
type Options struct {
	Store        database.Store
	Auth         *auth.Service
	Audit        *audit.Logger
	CookieSecure bool
	// LoginLimiter throttles the login route per client IP; nil disables it.
	LoginLimiter *auth.RateLimiter
	CORSOrigins  []string
}

// NewHandler creates a new API handler
func NewHandler(opts Options) *Handler {
	return &Handler{
		store:        opts.Store,
		auth:         opts.Auth,
		audit:        opts.Audit,
		cookieSecure: opts.CookieSecure,
	}
}

// NewServer builds the echo instance with middleware and all routes
func NewServer(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e.Group("/api"), NewHandler(opts), opts.LoginLimiter)
	return e
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api *echo.Group, h *Handler, limiter *auth.RateLimiter) {
	// Health check (public)
	api.GET("/health", healthCheck)

	// Public site
	api.GET("/properties", h.listProperties)
	api.GET("/properties/hot", h.listHotProperties)
	api.GET("/properties/featured", h.listFeaturedProperties)
	api.GET("/properties/category/:category", h.listPropertiesByCategory)
	api.GET("/properties/:id", h.getProperty)
	api.GET("/testimonials", h.listTestimonials)
	api.GET("/blog-posts", h.listPublishedBlogPosts)
	api.GET("/blog-posts/:id", h.getPublishedBlogPost)
	api.GET("/faqs", h.listActiveFAQs)

	// Admin login (public)
	var loginMiddleware []echo.MiddlewareFunc
	if limiter != nil {
		loginMiddleware = append(loginMiddleware, limiter.Middleware())
	}
	api.POST("/admin/login", h.login, loginMiddleware...)

	// Everything else under /admin requires a session
	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth(h.auth))
	admin.POST("/logout", h.logout)
	admin.GET("/me", h.me)
	admin.GET("/dashboard/stats", h.dashboardStats)
	admin.GET("/security-logs", h.listSecurityLogs, auth.RequireSuperAdmin())

	admin.GET("/properties", h.adminListProperties)
	admin.POST("/properties", h.createProperty)
	admin.POST("/properties/bulk", h.bulkProperties)
	admin.GET("/properties/:id", h.getProperty)
	admin.PUT("/properties/:id", h.updateProperty)
	admin.DELETE("/properties/:id", h.deleteProperty)

	admin.GET("/blog-posts", h.adminListBlogPosts)
	admin.POST("/blog-posts", h.createBlogPost)
	admin.GET("/blog-posts/:id", h.adminGetBlogPost)
	admin.PUT("/blog-posts/:id", h.updateBlogPost)
	admin.DELETE("/blog-posts/:id", h.deleteBlogPost)

	admin.GET("/testimonials", h.listTestimonials)
	admin.POST("/testimonials", h.createTestimonial)
	admin.GET("/testimonials/:id", h.getTestimonial)
	admin.PUT("/testimonials/:id", h.updateTestimonial)
	admin.DELETE("/testimonials/:id", h.deleteTestimonial)

	admin.GET("/faqs", h.adminListFAQs)
	admin.POST("/faqs", h.createFAQ)
	admin.GET("/faqs/:id", h.getFAQ)
	admin.PUT("/faqs/:id", h.updateFAQ)
	admin.DELETE("/faqs/:id", h.deleteFAQ)
}

// requestValidator plugs the shared struct validator into echo's c.Validate
type requestValidator struct{}

func (requestValidator) Validate(i any) error {
	return models.ValidateStruct(i)
}
