package domain

import (
	"fmt"
	"strings"
)

// Validate checks the book's required fields.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ValidationError{Entity: EntityBook, Field: "title", Reason: "must not be empty"}
	}
	for i, q := range b.Quotes {
		if strings.TrimSpace(q.Text) == "" {
			return ValidationError{Entity: EntityBook, Field: fmt.Sprintf("quotes[%d].text", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// Validate checks required fields and the release year window.
func (v VinylRecord) Validate() error {
	if strings.TrimSpace(v.Artist) == "" {
		return ValidationError{Entity: EntityVinylRecord, Field: "artist", Reason: "must not be empty"}
	}
	if strings.TrimSpace(v.Title) == "" {
		return ValidationError{Entity: EntityVinylRecord, Field: "title", Reason: "must not be empty"}
	}
	if v.Year != nil && (*v.Year < MinYear || *v.Year > MaxYear) {
		return ValidationError{Entity: EntityVinylRecord, Field: "year", Reason: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)}
	}
	return nil
}

// Validate checks the brand name. Uniqueness is enforced by the store.
func (b CoffeeBrand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ValidationError{Entity: EntityCoffeeBrand, Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks required fields. Brand existence is enforced by the store.
func (c Coffee) Validate() error {
	if c.BrandID == "" {
		return ValidationError{Entity: EntityCoffee, Field: "brand_id", Reason: "must reference a brand"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Entity: EntityCoffee, Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks required fields and the rating window.
func (r CoffeeReview) Validate() error {
	if r.CoffeeID == "" {
		return ValidationError{Entity: EntityCoffeeReview, Field: "coffee_id", Reason: "must reference a coffee"}
	}
	if strings.TrimSpace(r.Method) == "" {
		return ValidationError{Entity: EntityCoffeeReview, Field: "method", Reason: "must not be empty"}
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		return ValidationError{Entity: EntityCoffeeReview, Field: "rating", Reason: fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)}
	}
	return nil
}

// Validate checks the figure's required fields.
func (f Figure) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ValidationError{Entity: EntityFigure, Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(f.Brand) == "" {
		return ValidationError{Entity: EntityFigure, Field: "brand", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks plant photo entries. All top-level fields are optional.
func (p Plant) Validate() error {
	for i, ph := range p.Photos {
		if strings.TrimSpace(ph.URL) == "" {
			return ValidationError{Entity: EntityPlant, Field: fmt.Sprintf("photos[%d].url", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// Validate checks the project's required fields.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError{Entity: EntityProject, Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return ValidationError{Entity: EntityProject, Field: "description", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks required fields and the publication year window.
func (p Publication) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ValidationError{Entity: EntityPublication, Field: "title", Reason: "must not be empty"}
	}
	if p.Year != nil && (*p.Year < MinYear || *p.Year > MaxYear) {
		return ValidationError{Entity: EntityPublication, Field: "year", Reason: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)}
	}
	return nil
}

// Validate checks the infographic's required fields.
func (i Infographic) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ValidationError{Entity: EntityInfographic, Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks the link's required fields.
func (m MediaLink) Validate() error {
	if strings.TrimSpace(m.Type) == "" {
		return ValidationError{Entity: EntityMediaLink, Field: "type", Reason: "must not be empty"}
	}
	if strings.TrimSpace(m.Value) == "" {
		return ValidationError{Entity: EntityMediaLink, Field: "value", Reason: "must not be empty"}
	}
	return nil
}

// Validate checks the singleton's required fields. The aggregation still
// serves empty strings while no row exists at all.
func (c SiteConfig) Validate() error {
	if strings.TrimSpace(c.ExternalWishURL) == "" {
		return ValidationError{Entity: EntitySiteConfig, Field: "external_wish_url", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.AboutBio) == "" {
		return ValidationError{Entity: EntitySiteConfig, Field: "about_bio", Reason: "must not be empty"}
	}
	return nil
}
