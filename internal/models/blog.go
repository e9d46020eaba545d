package models

import (
	"slices"
	"strings"
	"time"
	"unicode"
)

// BlogStatus controls whether a post is publicly visible
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusScheduled BlogStatus = "scheduled"
)

// BlogPost is an article in the site's blog
type BlogPost struct {
	ID             string     `json:"id"`
	Title          string     `json:"title" validate:"required"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content" validate:"required"`
	Excerpt        *string    `json:"excerpt"`
	FeaturedImage  *string    `json:"featuredImage"`
	Category       string     `json:"category" validate:"required"`
	Tags           []string   `json:"tags"`
	SEOTitle       *string    `json:"seoTitle"`
	SEODescription *string    `json:"seoDescription"`
	Status         BlogStatus `json:"status" validate:"required,oneof=draft published scheduled"`
	PublishDate    *time.Time `json:"publishDate"`
	Author         string     `json:"author" validate:"required"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate checks the post invariants. The slug must already be derived.
func (p *BlogPost) Validate() error {
	if err := ValidateStruct(p); err != nil {
		return err
	}
	if p.Slug == "" {
		return invalid("title", "must contain at least one letter or digit")
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p *BlogPost) Clone() *BlogPost {
	cp := *p
	cp.Tags = slices.Clone(p.Tags)
	return &cp
}

// BlogPostPatch is a shallow partial update of a blog post. The slug is not
// patchable; it follows the title.
type BlogPostPatch struct {
	Title          Field[string]     `json:"title"`
	Content        Field[string]     `json:"content"`
	Excerpt        Field[*string]    `json:"excerpt"`
	FeaturedImage  Field[*string]    `json:"featuredImage"`
	Category       Field[string]     `json:"category"`
	Tags           Field[[]string]   `json:"tags"`
	SEOTitle       Field[*string]    `json:"seoTitle"`
	SEODescription Field[*string]    `json:"seoDescription"`
	Status         Field[BlogStatus] `json:"status"`
	PublishDate    Field[*time.Time] `json:"publishDate"`
	Author         Field[string]     `json:"author"`
}

// ApplyTo merges the supplied fields over p and re-derives the slug when the
// title changes.
func (u BlogPostPatch) ApplyTo(p *BlogPost) {
	u.Title.ApplyTo(&p.Title)
	u.Content.ApplyTo(&p.Content)
	u.Excerpt.ApplyTo(&p.Excerpt)
	u.FeaturedImage.ApplyTo(&p.FeaturedImage)
	u.Category.ApplyTo(&p.Category)
	u.Tags.ApplyTo(&p.Tags)
	u.SEOTitle.ApplyTo(&p.SEOTitle)
	u.SEODescription.ApplyTo(&p.SEODescription)
	u.Status.ApplyTo(&p.Status)
	u.PublishDate.ApplyTo(&p.PublishDate)
	u.Author.ApplyTo(&p.Author)
	if u.Title.Set {
		p.Slug = Slugify(p.Title)
	}
}

// BlogPostFilter narrows a blog listing. An empty Status matches every post.
type BlogPostFilter struct {
	Status BlogStatus
}

// Matches reports whether p passes the filter.
func (f BlogPostFilter) Matches(p *BlogPost) bool {
	return f.Status == "" || p.Status == f.Status
}

// Slugify derives a URL slug from a title: lowercase, characters other than
// ASCII letters, digits, hyphens and whitespace dropped, and each run of
// whitespace replaced by a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
