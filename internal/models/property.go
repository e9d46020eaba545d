package models

import (
	"encoding/json"
	"slices"
	"strings"
)

// Category is the listing section a property appears under
type Category string

const (
	CategoryHouses      Category = "houses"
	CategoryLand        Category = "land"
	CategoryCondos      Category = "condos"
	CategoryBeach       Category = "beach"
	CategoryCommercial  Category = "commercial"
	CategoryAgriculture Category = "agriculture"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryHouses,
	CategoryLand,
	CategoryCondos,
	CategoryBeach,
	CategoryCommercial,
	CategoryAgriculture,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// ContactInfo is the public contact block shown on a listing
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Property represents a real-estate listing
type Property struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title" validate:"required"`
	Price               string          `json:"price" validate:"required,numeric"`
	PricePerSqm         *string         `json:"pricePerSqm"`
	Location            string          `json:"location" validate:"required"`
	Category            Category        `json:"category" validate:"required,oneof=houses land condos beach commercial agriculture"`
	Bedrooms            *int            `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms           *int            `json:"bathrooms" validate:"omitempty,gte=0"`
	SquareFeet          *int            `json:"squareFeet" validate:"omitempty,gte=0"`
	LotSize             *string         `json:"lotSize"`
	YearBuilt           *int            `json:"yearBuilt" validate:"omitempty,gte=1800,lte=2200"`
	PropertyType        *string         `json:"propertyType"`
	Description         string          `json:"description" validate:"required"`
	DetailedDescription *string         `json:"detailedDescription"`
	Features            []string        `json:"features"`
	Images              []string        `json:"images" validate:"min=1,dive,required"`
	VideoURL            *string         `json:"videoUrl"`
	ContactInfo         *ContactInfo    `json:"contactInfo"`
	BrokerName          string          `json:"brokerName" validate:"required"`
	BrokerPhone         string          `json:"brokerPhone" validate:"required"`
	BrokerEmail         string          `json:"brokerEmail" validate:"required,email"`
	TitleType           *string         `json:"titleType"`
	IsFeatured          bool            `json:"isFeatured"`
	IsHot               bool            `json:"isHot"`
	CategoryData        CategoryDetails `json:"categoryData"`
}

// UnmarshalJSON decodes the category data into the variant named by the
// category field.
func (p *Property) UnmarshalJSON(b []byte) error {
	type plain Property
	aux := struct {
		*plain
		CategoryData json.RawMessage `json:"categoryData"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	details, err := DecodeCategoryData(p.Category, aux.CategoryData)
	if err != nil {
		return err
	}
	p.CategoryData = details
	return nil
}

// Validate checks the listing invariants: required text, a non-empty image
// list, the broker contact triple and category data matching the category.
func (p *Property) Validate() error {
	if err := ValidateStruct(p); err != nil {
		return err
	}
	if p.CategoryData == nil {
		return nil
	}
	if p.CategoryData.Category() != p.Category {
		return invalid("categoryData", "does not match category %q", p.Category)
	}
	return p.CategoryData.Validate()
}

// Clone returns a copy that shares no slices with p.
func (p *Property) Clone() *Property {
	cp := *p
	cp.Features = slices.Clone(p.Features)
	cp.Images = slices.Clone(p.Images)
	if p.ContactInfo != nil {
		ci := *p.ContactInfo
		cp.ContactInfo = &ci
	}
	return &cp
}

// PropertyPatch is a shallow partial update of a property
type PropertyPatch struct {
	Title               Field[string]          `json:"title"`
	Price               Field[string]          `json:"price"`
	PricePerSqm         Field[*string]         `json:"pricePerSqm"`
	Location            Field[string]          `json:"location"`
	Category            Field[Category]        `json:"category"`
	Bedrooms            Field[*int]            `json:"bedrooms"`
	Bathrooms           Field[*int]            `json:"bathrooms"`
	SquareFeet          Field[*int]            `json:"squareFeet"`
	LotSize             Field[*string]         `json:"lotSize"`
	YearBuilt           Field[*int]            `json:"yearBuilt"`
	PropertyType        Field[*string]         `json:"propertyType"`
	Description         Field[string]          `json:"description"`
	DetailedDescription Field[*string]         `json:"detailedDescription"`
	Features            Field[[]string]        `json:"features"`
	Images              Field[[]string]        `json:"images"`
	VideoURL            Field[*string]         `json:"videoUrl"`
	ContactInfo         Field[*ContactInfo]    `json:"contactInfo"`
	BrokerName          Field[string]          `json:"brokerName"`
	BrokerPhone         Field[string]          `json:"brokerPhone"`
	BrokerEmail         Field[string]          `json:"brokerEmail"`
	TitleType           Field[*string]         `json:"titleType"`
	IsFeatured          Field[bool]            `json:"isFeatured"`
	IsHot               Field[bool]            `json:"isHot"`
	CategoryData        Field[json.RawMessage] `json:"categoryData"`
}

// ApplyTo merges the supplied fields over p. Category data is decoded
// against the category the property has after the merge.
func (u PropertyPatch) ApplyTo(p *Property) error {
	u.Title.ApplyTo(&p.Title)
	u.Price.ApplyTo(&p.Price)
	u.PricePerSqm.ApplyTo(&p.PricePerSqm)
	u.Location.ApplyTo(&p.Location)
	u.Category.ApplyTo(&p.Category)
	u.Bedrooms.ApplyTo(&p.Bedrooms)
	u.Bathrooms.ApplyTo(&p.Bathrooms)
	u.SquareFeet.ApplyTo(&p.SquareFeet)
	u.LotSize.ApplyTo(&p.LotSize)
	u.YearBuilt.ApplyTo(&p.YearBuilt)
	u.PropertyType.ApplyTo(&p.PropertyType)
	u.Description.ApplyTo(&p.Description)
	u.DetailedDescription.ApplyTo(&p.DetailedDescription)
	u.Features.ApplyTo(&p.Features)
	u.Images.ApplyTo(&p.Images)
	u.VideoURL.ApplyTo(&p.VideoURL)
	u.ContactInfo.ApplyTo(&p.ContactInfo)
	u.BrokerName.ApplyTo(&p.BrokerName)
	u.BrokerPhone.ApplyTo(&p.BrokerPhone)
	u.BrokerEmail.ApplyTo(&p.BrokerEmail)
	u.TitleType.ApplyTo(&p.TitleType)
	u.IsFeatured.ApplyTo(&p.IsFeatured)
	u.IsHot.ApplyTo(&p.IsHot)

	if u.CategoryData.Set {
		details, err := DecodeCategoryData(p.Category, u.CategoryData.Value)
		if err != nil {
			return err
		}
		p.CategoryData = details
	}
	return nil
}

// PropertyFilter narrows a property listing. The zero value matches everything.
type PropertyFilter struct {
	Category Category
	// Status is "featured" or "hot"; any other value is ignored.
	Status string
	Search string
}

// Property status filters
const (
	StatusFeatured = "featured"
	StatusHot      = "hot"
)

// Matches reports whether p passes every criterion of the filter.
func (f PropertyFilter) Matches(p *Property) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	switch f.Status {
	case StatusFeatured:
		if !p.IsFeatured {
			return false
		}
	case StatusHot:
		if !p.IsHot {
			return false
		}
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Location), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	return true
}
