package models

import "time"

// FAQ is a question and answer shown on the help page
type FAQ struct {
	ID        string    `json:"id"`
	Question  string    `json:"question" validate:"required"`
	Answer    string    `json:"answer" validate:"required"`
	Category  string    `json:"category" validate:"required"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the FAQ invariants.
func (f *FAQ) Validate() error {
	return ValidateStruct(f)
}

// FAQPatch is a shallow partial update of a FAQ
type FAQPatch struct {
	Question Field[string] `json:"question"`
	Answer   Field[string] `json:"answer"`
	Category Field[string] `json:"category"`
	Order    Field[int]    `json:"order"`
	IsActive Field[bool]   `json:"isActive"`
}

// ApplyTo merges the supplied fields over f.
func (u FAQPatch) ApplyTo(f *FAQ) {
	u.Question.ApplyTo(&f.Question)
	u.Answer.ApplyTo(&f.Answer)
	u.Category.ApplyTo(&f.Category)
	u.Order.ApplyTo(&f.Order)
	u.IsActive.ApplyTo(&f.IsActive)
}

// FAQFilter narrows a FAQ listing
type FAQFilter struct {
	ActiveOnly bool
}
