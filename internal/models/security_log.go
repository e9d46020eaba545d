package models

import (
	"maps"
	"time"
)

// SecurityLog is one entry of the append-only admin audit trail
type SecurityLog struct {
	ID          string         `json:"id"`
	AdminUserID *string        `json:"adminUserId"`
	Action      string         `json:"action"`
	IPAddress   string         `json:"ipAddress,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Clone returns a copy with its own details map.
func (l *SecurityLog) Clone() *SecurityLog {
	cp := *l
	cp.Details = maps.Clone(l.Details)
	return &cp
}

// Audited actions
const (
	ActionLogin                 = "login"
	ActionLogout                = "logout"
	ActionFailedLogin           = "failed_login"
	ActionCreateProperty        = "create_property"
	ActionUpdateProperty        = "update_property"
	ActionDeleteProperty        = "delete_property"
	ActionBulkPropertyOperation = "bulk_property_operation"
	ActionCreateBlogPost        = "create_blog_post"
	ActionUpdateBlogPost        = "update_blog_post"
	ActionDeleteBlogPost        = "delete_blog_post"
	ActionCreateTestimonial     = "create_testimonial"
	ActionUpdateTestimonial     = "update_testimonial"
	ActionDeleteTestimonial     = "delete_testimonial"
	ActionCreateFAQ             = "create_faq"
	ActionUpdateFAQ             = "update_faq"
	ActionDeleteFAQ             = "delete_faq"
)

// DefaultSecurityLogLimit is the page size used when no limit is given
const DefaultSecurityLogLimit = 50
