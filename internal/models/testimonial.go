package models

// DefaultRating is the star rating given to testimonials created without one
const DefaultRating = 5

// Testimonial is a client quote shown on the public site
type Testimonial struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Quote  string `json:"quote" validate:"required"`
	Avatar string `json:"avatar" validate:"required"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

// Validate checks the testimonial invariants.
func (t *Testimonial) Validate() error {
	return ValidateStruct(t)
}

// TestimonialPatch is a shallow partial update of a testimonial
type TestimonialPatch struct {
	Name   Field[string] `json:"name"`
	Title  Field[string] `json:"title"`
	Quote  Field[string] `json:"quote"`
	Avatar Field[string] `json:"avatar"`
	Rating Field[int]    `json:"rating"`
}

// ApplyTo merges the supplied fields over t.
func (u TestimonialPatch) ApplyTo(t *Testimonial) {
	u.Name.ApplyTo(&t.Name)
	u.Title.ApplyTo(&t.Title)
	u.Quote.ApplyTo(&t.Quote)
	u.Avatar.ApplyTo(&t.Avatar)
	u.Rating.ApplyTo(&t.Rating)
}
