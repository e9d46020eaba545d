package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"islandproperties-backend/internal/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func openTestSQLStore(t *testing.T, clock *fakeClock) *SQLStore {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.WithClock(clock.Now)
}

// forEachStore runs fn against every Store backend.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store, clock *fakeClock)) {
	t.Run("memory", func(t *testing.T) {
		clock := newFakeClock()
		fn(t, NewMemStore().WithClock(clock.Now), clock)
	})
	t.Run("sqlite", func(t *testing.T) {
		clock := newFakeClock()
		fn(t, openTestSQLStore(t, clock), clock)
	})
}

func ptrTo[T any](v T) *T { return &v }

func newTestProperty(title string, category models.Category) *models.Property {
	return &models.Property{
		Title:       title,
		Price:       "2500000",
		Location:    "Dauis, Bohol",
		Category:    category,
		Description: "A listing used in tests.",
		Features:    []string{"Garden"},
		Images:      []string{"https://example.com/1.jpg"},
		BrokerName:  "Test Broker",
		BrokerPhone: "+63 900 111 2222",
		BrokerEmail: "broker@example.com",
	}
}

func isValidationError(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr)
}

func TestPropertyCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()

		p := newTestProperty("Beach Lot", models.CategoryBeach)
		p.ContactInfo = &models.ContactInfo{Phone: "123", Email: "x@example.com"}
		p.CategoryData = models.BeachDetails{BeachfrontMeters: ptrTo(40.0), BeachType: "Cove"}
		if err := s.CreateProperty(ctx, p); err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
		if p.ID == "" {
			t.Fatal("CreateProperty did not assign an id")
		}

		got, err := s.GetProperty(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProperty: %v", err)
		}
		if got.Title != "Beach Lot" || got.ContactInfo == nil || got.ContactInfo.Phone != "123" {
			t.Errorf("unexpected property: %+v", got)
		}
		beach, ok := got.CategoryData.(models.BeachDetails)
		if !ok || beach.BeachfrontMeters == nil || *beach.BeachfrontMeters != 40 || beach.BeachType != "Cove" {
			t.Errorf("category data = %#v", got.CategoryData)
		}

		updated, err := s.UpdateProperty(ctx, p.ID, models.PropertyPatch{
			Price: models.Set("2600000"),
			IsHot: models.Set(true),
		})
		if err != nil {
			t.Fatalf("UpdateProperty: %v", err)
		}
		if updated.Price != "2600000" || !updated.IsHot || updated.Title != "Beach Lot" {
			t.Errorf("merge failed: %+v", updated)
		}

		if _, err := s.UpdateProperty(ctx, "missing", models.PropertyPatch{}); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateProperty(missing) = %v, want ErrNotFound", err)
		}

		if err := s.DeleteProperty(ctx, p.ID); err != nil {
			t.Fatalf("DeleteProperty: %v", err)
		}
		if _, err := s.GetProperty(ctx, p.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetProperty after delete = %v, want ErrNotFound", err)
		}
		// Deleting again is a no-op
		if err := s.DeleteProperty(ctx, p.ID); err != nil {
			t.Errorf("second DeleteProperty = %v", err)
		}
	})
}

func TestPropertyRejectsInvalid(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()

		bad := newTestProperty("No Images", models.CategoryLand)
		bad.Images = nil
		if err := s.CreateProperty(ctx, bad); !isValidationError(err) {
			t.Errorf("CreateProperty without images = %v, want ValidationError", err)
		}

		p := newTestProperty("Farm", models.CategoryAgriculture)
		if err := s.CreateProperty(ctx, p); err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
		if _, err := s.UpdateProperty(ctx, p.ID, models.PropertyPatch{Images: models.Set([]string{})}); !isValidationError(err) {
			t.Errorf("UpdateProperty clearing images = %v, want ValidationError", err)
		}
		got, err := s.GetProperty(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProperty: %v", err)
		}
		if len(got.Images) != 1 {
			t.Errorf("rejected update was stored: images = %v", got.Images)
		}
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		p := newTestProperty("Copy Check", models.CategoryHouses)
		if err := s.CreateProperty(ctx, p); err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
		p.Images[0] = "mutated"

		got, _ := s.GetProperty(ctx, p.ID)
		got.Features[0] = "mutated"

		again, _ := s.GetProperty(ctx, p.ID)
		if again.Images[0] != "https://example.com/1.jpg" || again.Features[0] != "Garden" {
			t.Errorf("stored record aliased by caller: %+v", again)
		}
	})
}

func TestListPropertiesFilters(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		if err := SeedSampleData(ctx, s); err != nil {
			t.Fatalf("SeedSampleData: %v", err)
		}

		tests := []struct {
			name   string
			filter models.PropertyFilter
			want   int
		}{
			{"all", models.PropertyFilter{}, 6},
			{"beach", models.PropertyFilter{Category: models.CategoryBeach}, 1},
			{"hot", models.PropertyFilter{Status: models.StatusHot}, 2},
			{"featured", models.PropertyFilter{Status: models.StatusFeatured}, 4},
			{"search", models.PropertyFilter{Search: "BOHOL"}, 4},
			{"hot houses", models.PropertyFilter{Category: models.CategoryHouses, Status: models.StatusHot}, 1},
			{"unknown category", models.PropertyFilter{Category: "castles"}, 0},
		}
		for _, tt := range tests {
			got, err := s.ListProperties(ctx, tt.filter)
			if err != nil {
				t.Fatalf("%s: ListProperties: %v", tt.name, err)
			}
			if len(got) != tt.want {
				t.Errorf("%s: got %d properties, want %d", tt.name, len(got), tt.want)
			}
		}

		all, _ := s.ListProperties(ctx, models.PropertyFilter{})
		if all[0].Title != "Private White Sand Beachfront Resort" {
			t.Errorf("first property = %q, want insertion order", all[0].Title)
		}
	})
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		for range 2 {
			if err := SeedSampleData(ctx, s); err != nil {
				t.Fatalf("SeedSampleData: %v", err)
			}
		}
		properties, _ := s.ListProperties(ctx, models.PropertyFilter{})
		testimonials, _ := s.ListTestimonials(ctx)
		faqs, _ := s.ListFAQs(ctx, models.FAQFilter{})
		if len(properties) != 6 || len(testimonials) != 3 || len(faqs) != 3 {
			t.Errorf("got %d properties, %d testimonials, %d faqs", len(properties), len(testimonials), len(faqs))
		}
	})
}

func TestTestimonials(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		tm := &models.Testimonial{Name: "Jo", Title: "Buyer", Quote: "Great", Avatar: "https://example.com/a.jpg"}
		if err := s.CreateTestimonial(ctx, tm); err != nil {
			t.Fatalf("CreateTestimonial: %v", err)
		}
		if tm.Rating != models.DefaultRating {
			t.Errorf("rating = %d, want default %d", tm.Rating, models.DefaultRating)
		}

		if _, err := s.UpdateTestimonial(ctx, tm.ID, models.TestimonialPatch{Rating: models.Set(9)}); !isValidationError(err) {
			t.Errorf("UpdateTestimonial rating 9 = %v, want ValidationError", err)
		}
		updated, err := s.UpdateTestimonial(ctx, tm.ID, models.TestimonialPatch{Quote: models.Set("Superb")})
		if err != nil {
			t.Fatalf("UpdateTestimonial: %v", err)
		}
		if updated.Quote != "Superb" || updated.Name != "Jo" || updated.Rating != 5 {
			t.Errorf("unexpected testimonial: %+v", updated)
		}

		if err := s.DeleteTestimonial(ctx, tm.ID); err != nil {
			t.Fatalf("DeleteTestimonial: %v", err)
		}
		list, _ := s.ListTestimonials(ctx)
		if len(list) != 0 {
			t.Errorf("got %d testimonials after delete", len(list))
		}
	})
}

func TestAdminUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, clock *fakeClock) {
		ctx := context.Background()

		admin := &models.AdminUser{Email: " Owner@Example.COM ", PasswordHash: "hash"}
		if err := s.CreateAdminUser(ctx, admin); err != nil {
			t.Fatalf("CreateAdminUser: %v", err)
		}
		if admin.Email != "owner@example.com" || admin.Role != models.RoleAdmin {
			t.Errorf("unexpected admin: %+v", admin)
		}

		got, err := s.GetAdminUserByEmail(ctx, "OWNER@example.com")
		if err != nil {
			t.Fatalf("GetAdminUserByEmail: %v", err)
		}
		if got.ID != admin.ID || got.PasswordHash != "hash" {
			t.Errorf("lookup returned %+v", got)
		}

		dup := &models.AdminUser{Email: "owner@EXAMPLE.com", PasswordHash: "other"}
		if err := s.CreateAdminUser(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("duplicate CreateAdminUser = %v, want ErrDuplicateEmail", err)
		}

		second := &models.AdminUser{Email: "second@example.com", PasswordHash: "h", Role: models.RoleSuperAdmin}
		if err := s.CreateAdminUser(ctx, second); err != nil {
			t.Fatalf("CreateAdminUser: %v", err)
		}
		if n, _ := s.CountAdminUsers(ctx); n != 2 {
			t.Errorf("CountAdminUsers = %d, want 2", n)
		}
		if _, err := s.UpdateAdminUser(ctx, second.ID, models.AdminUserPatch{Email: models.Set("owner@example.com")}); !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("UpdateAdminUser to taken email = %v, want ErrDuplicateEmail", err)
		}

		until := clock.Now().Add(15 * time.Minute)
		locked, err := s.UpdateAdminUser(ctx, admin.ID, models.AdminUserPatch{
			LoginAttempts: models.Set(5),
			LockedUntil:   models.Set(&until),
		})
		if err != nil {
			t.Fatalf("UpdateAdminUser: %v", err)
		}
		if locked.LoginAttempts != 5 || locked.LockedUntil == nil || !locked.LockedUntil.Equal(until) {
			t.Errorf("lock not stored: %+v", locked)
		}

		reread, _ := s.GetAdminUser(ctx, admin.ID)
		if reread.LockedUntil == nil || !reread.LockedUntil.Equal(until) {
			t.Errorf("lock not persisted: %+v", reread)
		}

		cleared, err := s.UpdateAdminUser(ctx, admin.ID, models.AdminUserPatch{LockedUntil: models.Set[*time.Time](nil)})
		if err != nil {
			t.Fatalf("UpdateAdminUser: %v", err)
		}
		if cleared.LockedUntil != nil || cleared.LoginAttempts != 5 {
			t.Errorf("unexpected admin after clearing lock: %+v", cleared)
		}

		if _, err := s.GetAdminUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetAdminUser(missing) = %v", err)
		}
		if err := s.CreateAdminUser(ctx, &models.AdminUser{Email: "nohash@example.com"}); !isValidationError(err) {
			t.Errorf("CreateAdminUser without hash = %v, want ValidationError", err)
		}
	})
}

func TestUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		u := &models.User{Username: "visitor", PasswordHash: "h"}
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		got, err := s.GetUserByUsername(ctx, "visitor")
		if err != nil || got.ID != u.ID {
			t.Fatalf("GetUserByUsername = %+v, %v", got, err)
		}
		if err := s.CreateUser(ctx, &models.User{Username: "visitor"}); !errors.Is(err, ErrDuplicateUsername) {
			t.Errorf("duplicate CreateUser = %v, want ErrDuplicateUsername", err)
		}
		if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetUser(missing) = %v", err)
		}
	})
}

func newTestPost(title string, status models.BlogStatus) *models.BlogPost {
	return &models.BlogPost{
		Title:    title,
		Content:  "Body text",
		Category: "market",
		Tags:     []string{"bohol"},
		Status:   status,
		Author:   "Editor",
	}
}

func TestBlogPosts(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, clock *fakeClock) {
		ctx := context.Background()

		first := newTestPost("Market Update: Q3!!", models.BlogStatusPublished)
		if err := s.CreateBlogPost(ctx, first); err != nil {
			t.Fatalf("CreateBlogPost: %v", err)
		}
		if first.Slug != "market-update-q3" {
			t.Errorf("slug = %q", first.Slug)
		}

		clock.Advance(time.Minute)
		draft := newTestPost("Buying Guide", "")
		if err := s.CreateBlogPost(ctx, draft); err != nil {
			t.Fatalf("CreateBlogPost: %v", err)
		}
		if draft.Status != models.BlogStatusDraft {
			t.Errorf("status = %q, want draft", draft.Status)
		}

		if err := s.CreateBlogPost(ctx, newTestPost("market update q3", models.BlogStatusDraft)); !errors.Is(err, ErrDuplicateSlug) {
			t.Errorf("duplicate slug = %v, want ErrDuplicateSlug", err)
		}

		all, err := s.ListBlogPosts(ctx, models.BlogPostFilter{})
		if err != nil {
			t.Fatalf("ListBlogPosts: %v", err)
		}
		if len(all) != 2 || all[0].ID != draft.ID {
			t.Errorf("expected newest first, got %d posts", len(all))
		}

		published, _ := s.ListBlogPosts(ctx, models.BlogPostFilter{Status: models.BlogStatusPublished})
		if len(published) != 1 || published[0].ID != first.ID {
			t.Errorf("published filter returned %d posts", len(published))
		}

		bySlug, err := s.GetBlogPostBySlug(ctx, "buying-guide")
		if err != nil || bySlug.ID != draft.ID {
			t.Errorf("GetBlogPostBySlug = %+v, %v", bySlug, err)
		}

		clock.Advance(time.Minute)
		updated, err := s.UpdateBlogPost(ctx, draft.ID, models.BlogPostPatch{Title: models.Set("Buying Guide 2025")})
		if err != nil {
			t.Fatalf("UpdateBlogPost: %v", err)
		}
		if updated.Slug != "buying-guide-2025" {
			t.Errorf("slug after retitle = %q", updated.Slug)
		}
		if !updated.UpdatedAt.After(updated.CreatedAt) {
			t.Errorf("updatedAt not bumped: %v <= %v", updated.UpdatedAt, updated.CreatedAt)
		}
		if _, err := s.UpdateBlogPost(ctx, draft.ID, models.BlogPostPatch{Title: models.Set("Market Update Q3")}); !errors.Is(err, ErrDuplicateSlug) {
			t.Errorf("retitle onto taken slug = %v, want ErrDuplicateSlug", err)
		}
		if _, err := s.UpdateBlogPost(ctx, draft.ID, models.BlogPostPatch{Status: models.Set(models.BlogStatus("archived"))}); !isValidationError(err) {
			t.Errorf("invalid status = %v, want ValidationError", err)
		}
	})
}

func TestFAQOrdering(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, clock *fakeClock) {
		ctx := context.Background()
		create := func(q string, order int, active bool) *models.FAQ {
			f := &models.FAQ{Question: q, Answer: "a", Category: "general", Order: order, IsActive: active}
			if err := s.CreateFAQ(ctx, f); err != nil {
				t.Fatalf("CreateFAQ: %v", err)
			}
			clock.Advance(time.Second)
			return f
		}
		c := create("third", 2, true)
		a := create("first", 1, true)
		b := create("second", 1, false)

		all, _ := s.ListFAQs(ctx, models.FAQFilter{})
		if len(all) != 3 || all[0].ID != a.ID || all[1].ID != b.ID || all[2].ID != c.ID {
			t.Errorf("unexpected order: %v", questions(all))
		}

		active, _ := s.ListFAQs(ctx, models.FAQFilter{ActiveOnly: true})
		if len(active) != 2 || active[0].ID != a.ID || active[1].ID != c.ID {
			t.Errorf("unexpected active list: %v", questions(active))
		}

		updated, err := s.UpdateFAQ(ctx, b.ID, models.FAQPatch{IsActive: models.Set(true), Order: models.Set(0)})
		if err != nil {
			t.Fatalf("UpdateFAQ: %v", err)
		}
		if !updated.IsActive || updated.Question != "second" {
			t.Errorf("unexpected faq: %+v", updated)
		}
		active, _ = s.ListFAQs(ctx, models.FAQFilter{ActiveOnly: true})
		if len(active) != 3 || active[0].ID != b.ID {
			t.Errorf("reorder not applied: %v", questions(active))
		}
	})
}

func questions(faqs []*models.FAQ) []string {
	out := make([]string, len(faqs))
	for i, f := range faqs {
		out[i] = f.Question
	}
	return out
}

func TestSecurityLogs(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, clock *fakeClock) {
		ctx := context.Background()
		adminID := "admin-1"
		for i, action := range []string{models.ActionLogin, models.ActionCreateProperty, models.ActionLogout} {
			l := &models.SecurityLog{
				AdminUserID: &adminID,
				Action:      action,
				IPAddress:   "10.0.0.1",
				Details:     map[string]any{"n": i},
			}
			if err := s.CreateSecurityLog(ctx, l); err != nil {
				t.Fatalf("CreateSecurityLog: %v", err)
			}
			if l.ID == "" || l.CreatedAt.IsZero() {
				t.Errorf("id or timestamp not assigned: %+v", l)
			}
			clock.Advance(time.Second)
		}
		// Entries without an admin are kept too
		if err := s.CreateSecurityLog(ctx, &models.SecurityLog{Action: models.ActionFailedLogin}); err != nil {
			t.Fatalf("CreateSecurityLog: %v", err)
		}

		logs, err := s.ListSecurityLogs(ctx, 2)
		if err != nil {
			t.Fatalf("ListSecurityLogs: %v", err)
		}
		if len(logs) != 2 {
			t.Fatalf("got %d logs, want 2", len(logs))
		}
		if logs[0].Action != models.ActionFailedLogin || logs[0].AdminUserID != nil {
			t.Errorf("newest entry = %+v", logs[0])
		}
		if logs[1].Action != models.ActionLogout || logs[1].Details["n"] != float64(2) && logs[1].Details["n"] != 2 {
			t.Errorf("second entry = %+v", logs[1])
		}

		all, _ := s.ListSecurityLogs(ctx, 0)
		if len(all) != 4 {
			t.Errorf("default limit returned %d entries", len(all))
		}
	})
}

func TestSecurityLogTiesKeepInsertOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store, _ *fakeClock) {
		ctx := context.Background()
		for _, action := range []string{"a", "b", "c"} {
			if err := s.CreateSecurityLog(ctx, &models.SecurityLog{Action: action}); err != nil {
				t.Fatalf("CreateSecurityLog: %v", err)
			}
		}
		logs, _ := s.ListSecurityLogs(ctx, 10)
		if len(logs) != 3 || logs[0].Action != "c" || logs[2].Action != "a" {
			t.Errorf("unexpected order: %v %v %v", logs[0].Action, logs[1].Action, logs[2].Action)
		}
	})
}

func TestSQLSecurityLogRejectsUnencodableDetails(t *testing.T) {
	s := openTestSQLStore(t, newFakeClock())
	ctx := context.Background()

	l := &models.SecurityLog{
		Action:  models.ActionCreateProperty,
		Details: map[string]any{"callback": func() {}},
	}
	if err := s.CreateSecurityLog(ctx, l); err == nil {
		t.Fatal("CreateSecurityLog accepted details that cannot be encoded")
	}
	logs, err := s.ListSecurityLogs(ctx, 10)
	if err != nil {
		t.Fatalf("ListSecurityLogs: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d entries, want none written", len(logs))
	}
}
