package database

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"islandproperties-backend/internal/models"
)

// table keeps records by id and remembers insertion order.
type table[T any] struct {
	rows map[string]*row[T]
	seq  int64
}

type row[T any] struct {
	seq int64
	val *T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*row[T])}
}

func (t *table[T]) get(id string) (*T, bool) {
	r, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return r.val, true
}

func (t *table[T]) insert(id string, v *T) {
	t.seq++
	t.rows[id] = &row[T]{seq: t.seq, val: v}
}

// replace swaps the stored value, keeping the original insertion position.
func (t *table[T]) replace(id string, v *T) {
	t.rows[id].val = v
}

func (t *table[T]) delete(id string) {
	delete(t.rows, id)
}

// ordered returns the rows oldest first.
func (t *table[T]) ordered() []*row[T] {
	out := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *row[T]) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

// MemStore is the in-memory Store. Records are copied on the way in and out
// so callers never share state with the store.
type MemStore struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        *table[models.User]
	properties   *table[models.Property]
	testimonials *table[models.Testimonial]
	adminUsers   *table[models.AdminUser]
	blogPosts    *table[models.BlogPost]
	faqs         *table[models.FAQ]
	securityLogs *table[models.SecurityLog]
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		now:          func() time.Time { return time.Now().UTC() },
		users:        newTable[models.User](),
		properties:   newTable[models.Property](),
		testimonials: newTable[models.Testimonial](),
		adminUsers:   newTable[models.AdminUser](),
		blogPosts:    newTable[models.BlogPost](),
		faqs:         newTable[models.FAQ](),
		securityLogs: newTable[models.SecurityLog](),
	}
}

// WithClock replaces the clock used for timestamps. Intended for tests.
func (s *MemStore) WithClock(now func() time.Time) *MemStore {
	s.now = now
	return s
}

// Close is a no-op; it exists to satisfy Store.
func (s *MemStore) Close() error { return nil }

// Users

func (s *MemStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.users.ordered() {
		if r.val.Username == username {
			cp := *r.val
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(_ context.Context, u *models.User) error {
	if u.Username == "" {
		return &models.ValidationError{Field: "username", Message: "is required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.users.rows {
		if r.val.Username == u.Username {
			return ErrDuplicateUsername
		}
	}
	u.ID = newID()
	cp := *u
	s.users.insert(u.ID, &cp)
	return nil
}

// Properties

func (s *MemStore) ListProperties(_ context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Property{}
	for _, r := range s.properties.ordered() {
		if filter.Matches(r.val) {
			out = append(out, r.val.Clone())
		}
	}
	return out, nil
}

func (s *MemStore) GetProperty(_ context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemStore) CreateProperty(_ context.Context, p *models.Property) error {
	if err := prepareProperty(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.insert(p.ID, p.Clone())
	return nil
}

func (s *MemStore) UpdateProperty(_ context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.properties.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := existing.Clone()
	if err := patch.ApplyTo(updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	s.properties.replace(id, updated)
	return updated.Clone(), nil
}

func (s *MemStore) DeleteProperty(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties.delete(id)
	return nil
}

// Testimonials

func (s *MemStore) ListTestimonials(_ context.Context) ([]*models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Testimonial{}
	for _, r := range s.testimonials.ordered() {
		cp := *r.val
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemStore) GetTestimonial(_ context.Context, id string) (*models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.testimonials.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemStore) CreateTestimonial(_ context.Context, t *models.Testimonial) error {
	if err := prepareTestimonial(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.testimonials.insert(t.ID, &cp)
	return nil
}

func (s *MemStore) UpdateTestimonial(_ context.Context, id string, patch models.TestimonialPatch) (*models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.testimonials.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := *existing
	patch.ApplyTo(&updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	s.testimonials.replace(id, &updated)
	cp := updated
	return &cp, nil
}

func (s *MemStore) DeleteTestimonial(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testimonials.delete(id)
	return nil
}

// Admin users

func (s *MemStore) GetAdminUser(_ context.Context, id string) (*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.adminUsers.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemStore) GetAdminUserByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	email = models.NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.adminUsers.rows {
		if r.val.Email == email {
			cp := *r.val
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CountAdminUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.adminUsers.rows), nil
}

func (s *MemStore) CreateAdminUser(_ context.Context, u *models.AdminUser) error {
	if err := prepareAdminUser(u, s.now); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminEmailTaken(u.Email, "") {
		return ErrDuplicateEmail
	}
	cp := *u
	s.adminUsers.insert(u.ID, &cp)
	return nil
}

func (s *MemStore) UpdateAdminUser(_ context.Context, id string, patch models.AdminUserPatch) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.adminUsers.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := *existing
	patch.ApplyTo(&updated)
	updated.UpdatedAt = s.now()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if s.adminEmailTaken(updated.Email, id) {
		return nil, ErrDuplicateEmail
	}
	s.adminUsers.replace(id, &updated)
	cp := updated
	return &cp, nil
}

// adminEmailTaken must be called with the lock held.
func (s *MemStore) adminEmailTaken(email, exceptID string) bool {
	for id, r := range s.adminUsers.rows {
		if id != exceptID && r.val.Email == email {
			return true
		}
	}
	return false
}

// Blog posts

func (s *MemStore) ListBlogPosts(_ context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.blogPosts.ordered()
	// Newest first; insertion order breaks timestamp ties.
	slices.Reverse(rows)
	slices.SortStableFunc(rows, func(a, b *row[models.BlogPost]) int {
		return b.val.CreatedAt.Compare(a.val.CreatedAt)
	})
	out := []*models.BlogPost{}
	for _, r := range rows {
		if filter.Matches(r.val) {
			out = append(out, r.val.Clone())
		}
	}
	return out, nil
}

func (s *MemStore) GetBlogPost(_ context.Context, id string) (*models.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.blogPosts.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemStore) GetBlogPostBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.blogPosts.rows {
		if r.val.Slug == slug {
			return r.val.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateBlogPost(_ context.Context, p *models.BlogPost) error {
	if err := prepareBlogPost(p, s.now); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(p.Slug, "") {
		return ErrDuplicateSlug
	}
	s.blogPosts.insert(p.ID, p.Clone())
	return nil
}

func (s *MemStore) UpdateBlogPost(_ context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.blogPosts.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := existing.Clone()
	patch.ApplyTo(updated)
	updated.UpdatedAt = s.now()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if s.slugTaken(updated.Slug, id) {
		return nil, ErrDuplicateSlug
	}
	s.blogPosts.replace(id, updated)
	return updated.Clone(), nil
}

func (s *MemStore) DeleteBlogPost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogPosts.delete(id)
	return nil
}

// slugTaken must be called with the lock held.
func (s *MemStore) slugTaken(slug, exceptID string) bool {
	for id, r := range s.blogPosts.rows {
		if id != exceptID && r.val.Slug == slug {
			return true
		}
	}
	return false
}

// FAQs

func (s *MemStore) ListFAQs(_ context.Context, filter models.FAQFilter) ([]*models.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.FAQ{}
	for _, r := range s.faqs.ordered() {
		if filter.ActiveOnly && !r.val.IsActive {
			continue
		}
		cp := *r.val
		out = append(out, &cp)
	}
	sortFAQs(out)
	return out, nil
}

func (s *MemStore) GetFAQ(_ context.Context, id string) (*models.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.faqs.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *MemStore) CreateFAQ(_ context.Context, f *models.FAQ) error {
	if err := prepareFAQ(f, s.now); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *f
	s.faqs.insert(f.ID, &cp)
	return nil
}

func (s *MemStore) UpdateFAQ(_ context.Context, id string, patch models.FAQPatch) (*models.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.faqs.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := *existing
	patch.ApplyTo(&updated)
	updated.UpdatedAt = s.now()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	s.faqs.replace(id, &updated)
	cp := updated
	return &cp, nil
}

func (s *MemStore) DeleteFAQ(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faqs.delete(id)
	return nil
}

// Security logs

func (s *MemStore) CreateSecurityLog(_ context.Context, l *models.SecurityLog) error {
	l.ID = newID()
	l.CreatedAt = s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.securityLogs.insert(l.ID, l.Clone())
	return nil
}

func (s *MemStore) ListSecurityLogs(_ context.Context, limit int) ([]*models.SecurityLog, error) {
	if limit <= 0 {
		limit = models.DefaultSecurityLogLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.securityLogs.ordered()
	// Sort by timestamp on every call; later inserts win ties.
	slices.SortFunc(rows, func(a, b *row[models.SecurityLog]) int {
		if c := b.val.CreatedAt.Compare(a.val.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*models.SecurityLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.val.Clone())
	}
	return out, nil
}
