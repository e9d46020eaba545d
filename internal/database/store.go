package database

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"islandproperties-backend/internal/models"
)

var (
	// ErrNotFound is returned by Get and Update operations when no record has
	// the requested id (or email, username, slug).
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail    = errors.New("admin email already exists")
	ErrDuplicateSlug     = errors.New("blog post slug already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the persistence contract for every entity kind. Implementations
// must be safe for concurrent use.
//
// Create methods assign a fresh id (and timestamps where the entity has
// them) on the record passed in. Update methods merge a patch over the stored
// record and return ErrNotFound for an unknown id. Delete methods are a no-op
// for an unknown id. Security logs can only be appended and listed.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error

	ListProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]*models.Testimonial, error)
	GetTestimonial(ctx context.Context, id string) (*models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *models.Testimonial) error
	UpdateTestimonial(ctx context.Context, id string, patch models.TestimonialPatch) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error

	GetAdminUser(ctx context.Context, id string) (*models.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CountAdminUsers(ctx context.Context) (int, error)
	CreateAdminUser(ctx context.Context, u *models.AdminUser) error
	UpdateAdminUser(ctx context.Context, id string, patch models.AdminUserPatch) (*models.AdminUser, error)

	ListBlogPosts(ctx context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	CreateBlogPost(ctx context.Context, p *models.BlogPost) error
	UpdateBlogPost(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error

	ListFAQs(ctx context.Context, filter models.FAQFilter) ([]*models.FAQ, error)
	GetFAQ(ctx context.Context, id string) (*models.FAQ, error)
	CreateFAQ(ctx context.Context, f *models.FAQ) error
	UpdateFAQ(ctx context.Context, id string, patch models.FAQPatch) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) error

	CreateSecurityLog(ctx context.Context, l *models.SecurityLog) error
	// ListSecurityLogs returns the limit most recent entries, newest first.
	// A limit <= 0 means models.DefaultSecurityLogLimit.
	ListSecurityLogs(ctx context.Context, limit int) ([]*models.SecurityLog, error)

	Close() error
}

func newID() string {
	return uuid.NewString()
}

// prepareProperty fills defaults for a new property and checks it.
func prepareProperty(p *models.Property) error {
	p.ID = newID()
	return p.Validate()
}

func prepareTestimonial(t *models.Testimonial) error {
	t.ID = newID()
	if t.Rating == 0 {
		t.Rating = models.DefaultRating
	}
	return t.Validate()
}

func prepareBlogPost(p *models.BlogPost, now func() time.Time) error {
	p.ID = newID()
	p.Slug = models.Slugify(p.Title)
	if p.Status == "" {
		p.Status = models.BlogStatusDraft
	}
	t := now()
	p.CreatedAt, p.UpdatedAt = t, t
	return p.Validate()
}

func prepareFAQ(f *models.FAQ, now func() time.Time) error {
	f.ID = newID()
	t := now()
	f.CreatedAt, f.UpdatedAt = t, t
	return f.Validate()
}

func prepareAdminUser(u *models.AdminUser, now func() time.Time) error {
	u.ID = newID()
	u.Email = models.NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	u.LoginAttempts = 0
	u.LockedUntil = nil
	u.LastLogin = nil
	t := now()
	u.CreatedAt, u.UpdatedAt = t, t
	return u.Validate()
}

// sortFAQs orders FAQs for display: by order, then oldest first.
func sortFAQs(faqs []*models.FAQ) {
	sort.SliceStable(faqs, func(i, j int) bool {
		if faqs[i].Order != faqs[j].Order {
			return faqs[i].Order < faqs[j].Order
		}
		return faqs[i].CreatedAt.Before(faqs[j].CreatedAt)
	})
}
