package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Market Update: Q3!!", "market-update-q3"},
		{"  Hello   World  ", "hello-world"},
		{"Bohol's Best Beaches", "bohols-best-beaches"},
		{"Pre-selling Condos", "pre-selling-condos"},
		{"Año Nuevo", "ao-nuevo"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func validProperty() *Property {
	return &Property{
		Title:       "Hillside Lot",
		Price:       "1500000",
		Location:    "Loboc, Bohol",
		Category:    CategoryLand,
		Description: "Quiet lot above the river.",
		Images:      []string{"https://example.com/lot.jpg"},
		BrokerName:  "Ana Reyes",
		BrokerPhone: "+63 900 000 0000",
		BrokerEmail: "ana@example.com",
	}
}

func TestPropertyValidate(t *testing.T) {
	if err := validProperty().Validate(); err != nil {
		t.Fatalf("valid property rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Property)
		field  string
	}{
		{"no images", func(p *Property) { p.Images = nil }, "images"},
		{"bad category", func(p *Property) { p.Category = "castles" }, "category"},
		{"bad broker email", func(p *Property) { p.BrokerEmail = "nope" }, "brokerEmail"},
		{"non numeric price", func(p *Property) { p.Price = "cheap" }, "price"},
		{"missing title", func(p *Property) { p.Title = "" }, "title"},
		{"mismatched details", func(p *Property) { p.CategoryData = HouseDetails{} }, "categoryData"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(p)
			err := p.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestDecodeCategoryData(t *testing.T) {
	details, err := DecodeCategoryData(CategoryBeach, json.RawMessage(`{"beachfrontMeters":150,"beachType":"White Sand"}`))
	if err != nil {
		t.Fatalf("DecodeCategoryData: %v", err)
	}
	beach, ok := details.(BeachDetails)
	if !ok {
		t.Fatalf("got %T, want BeachDetails", details)
	}
	if beach.BeachfrontMeters == nil || *beach.BeachfrontMeters != 150 {
		t.Errorf("beachfrontMeters = %v", beach.BeachfrontMeters)
	}

	// Attributes of another category are rejected
	if _, err := DecodeCategoryData(CategoryBeach, json.RawMessage(`{"bedrooms":3}`)); err == nil {
		t.Error("expected unknown attribute to be rejected")
	}

	for _, raw := range []string{"", "null", "  "} {
		details, err := DecodeCategoryData(CategoryHouses, json.RawMessage(raw))
		if err != nil || details != nil {
			t.Errorf("DecodeCategoryData(%q) = %v, %v; want nil, nil", raw, details, err)
		}
	}
}

func TestPropertyUnmarshalUsesCategory(t *testing.T) {
	body := `{"title":"Villa","category":"houses","categoryData":{"swimmingPool":true,"stories":2}}`
	var p Property
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	house, ok := p.CategoryData.(HouseDetails)
	if !ok {
		t.Fatalf("categoryData is %T, want HouseDetails", p.CategoryData)
	}
	if !house.SwimmingPool || house.Stories == nil || *house.Stories != 2 {
		t.Errorf("unexpected details: %+v", house)
	}
}

func TestPropertyPatchMerge(t *testing.T) {
	var patch PropertyPatch
	if err := json.Unmarshal([]byte(`{"title":"New Title","pricePerSqm":null,"isHot":true}`), &patch); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	p := validProperty()
	perSqm := "₱4,000"
	p.PricePerSqm = &perSqm
	if err := patch.ApplyTo(p); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}

	if p.Title != "New Title" {
		t.Errorf("title = %q", p.Title)
	}
	if p.PricePerSqm != nil {
		t.Errorf("pricePerSqm = %v, want cleared", *p.PricePerSqm)
	}
	if !p.IsHot {
		t.Error("isHot not applied")
	}
	// Omitted fields keep their values
	if p.Location != "Loboc, Bohol" || p.BrokerName != "Ana Reyes" {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestPropertyPatchDecodesDetailsAgainstNewCategory(t *testing.T) {
	var patch PropertyPatch
	body := `{"category":"condos","categoryData":{"floorLevel":"12th"}}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	p := validProperty()
	if err := patch.ApplyTo(p); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if _, ok := p.CategoryData.(CondoDetails); !ok {
		t.Fatalf("categoryData is %T, want CondoDetails", p.CategoryData)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate after patch: %v", err)
	}
}

func TestPropertyFilterMatches(t *testing.T) {
	p := validProperty()
	p.IsFeatured = true

	tests := []struct {
		filter PropertyFilter
		want   bool
	}{
		{PropertyFilter{}, true},
		{PropertyFilter{Category: CategoryLand}, true},
		{PropertyFilter{Category: CategoryBeach}, false},
		{PropertyFilter{Status: StatusFeatured}, true},
		{PropertyFilter{Status: StatusHot}, false},
		{PropertyFilter{Status: "anything"}, true},
		{PropertyFilter{Search: "LOBOC"}, true},
		{PropertyFilter{Search: "river"}, true},
		{PropertyFilter{Search: "penthouse"}, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(p); got != tt.want {
			t.Errorf("%+v.Matches() = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestBlogPostPatchRederivesSlug(t *testing.T) {
	post := &BlogPost{Title: "Old", Slug: "old"}
	BlogPostPatch{Content: Set("body")}.ApplyTo(post)
	if post.Slug != "old" {
		t.Errorf("slug changed without a title: %q", post.Slug)
	}
	BlogPostPatch{Title: Set("Brand New Title")}.ApplyTo(post)
	if post.Slug != "brand-new-title" {
		t.Errorf("slug = %q", post.Slug)
	}
}

func TestAdminUserIsLocked(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &AdminUser{}
	if u.IsLocked(now) {
		t.Error("unlocked account reported locked")
	}
	until := now.Add(time.Minute)
	u.LockedUntil = &until
	if !u.IsLocked(now) {
		t.Error("account inside window reported unlocked")
	}
	if u.IsLocked(until) {
		t.Error("lock still enforced at its end time")
	}
}

func TestAdminUserPatchNormalizesEmail(t *testing.T) {
	u := &AdminUser{Email: "a@example.com"}
	AdminUserPatch{Email: Set("  Boss@Example.COM ")}.ApplyTo(u)
	if u.Email != "boss@example.com" {
		t.Errorf("email = %q", u.Email)
	}
}

func TestFieldDistinguishesNullFromAbsent(t *testing.T) {
	var patch struct {
		A Field[*string] `json:"a"`
		B Field[*string] `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":null}`), &patch); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !patch.A.Set || patch.A.Value != nil {
		t.Errorf("a = %+v, want set to nil", patch.A)
	}
	if patch.B.Set {
		t.Error("b reported set")
	}
}
