// Package domain defines the persistent entities, value types, and
// persistence contracts shared by the shelfcore API server and the
// administrative bot.
package domain

import "time"

// EntityType identifies the kind of record stored in a persistence bucket.
type EntityType string

// Supported entity type identifiers used in persistence buckets and error messages.
const (
	// EntityBook identifies a book record.
	EntityBook EntityType = "book"
	// EntityVinylRecord identifies a vinyl record.
	EntityVinylRecord EntityType = "vinyl_record"
	// EntityCoffeeBrand identifies a coffee brand record.
	EntityCoffeeBrand EntityType = "coffee_brand"
	// EntityCoffee identifies a coffee record.
	EntityCoffee EntityType = "coffee"
	// EntityCoffeeReview identifies a coffee review record.
	EntityCoffeeReview EntityType = "coffee_review"
	// EntityFigure identifies a collectible figure record.
	EntityFigure EntityType = "figure"
	// EntityPlant identifies a plant record.
	EntityPlant EntityType = "plant"
	// EntityProject identifies a project record.
	EntityProject EntityType = "project"
	// EntityPublication identifies a publication record.
	EntityPublication EntityType = "publication"
	// EntityInfographic identifies an infographic record.
	EntityInfographic EntityType = "infographic"
	// EntityMediaLink identifies a media link record.
	EntityMediaLink EntityType = "media_link"
	// EntitySiteConfig identifies the site configuration singleton.
	EntitySiteConfig EntityType = "site_config"
)

// Year bounds accepted for vinyl release years and publication years.
const (
	MinYear = 1900
	MaxYear = 2030
)

// Rating bounds accepted for coffee review ratings.
const (
	MinRating = 0
	MaxRating = 10
)

// Base contains common fields for all domain records. Seq is a store-assigned
// monotonically increasing counter preserving insertion order across
// snapshot round trips.
type Base struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookQuote is a single quote captured for a book. Page is optional.
type BookQuote struct {
	Text string `json:"text"`
	Page *int   `json:"page,omitempty"`
}

// Book represents a book in the reading collection.
type Book struct {
	Base
	Title    string      `json:"title"`
	Author   *string     `json:"author"`
	Genre    *string     `json:"genre"`
	Language *string     `json:"language"`
	Format   *string     `json:"format"`
	Review   *string     `json:"review"`
	Opinion  *string     `json:"opinion"`
	Quotes   []BookQuote `json:"quotes"`
}

// VinylRecord represents one vinyl album.
type VinylRecord struct {
	Base
	Artist   string   `json:"artist"`
	Title    string   `json:"title"`
	Year     *int     `json:"year"`
	Genres   []string `json:"genres"`
	PhotoURL *string  `json:"photo_url"`
}

// CoffeeBrand represents a roaster. Names are unique (case-sensitive).
type CoffeeBrand struct {
	Base
	Name string `json:"name"`
}

// Coffee represents a coffee offering belonging to exactly one brand.
type Coffee struct {
	Base
	BrandID    string  `json:"brand_id"`
	Name       string  `json:"name"`
	Region     *string `json:"region"`
	Processing *string `json:"processing"`
}

// CoffeeReview is a tasting note for one coffee. Deleting the coffee deletes
// its reviews.
type CoffeeReview struct {
	Base
	CoffeeID string   `json:"coffee_id"`
	Method   string   `json:"method"`
	Rating   *float64 `json:"rating"`
	Notes    *string  `json:"notes"`
}

// Figure represents a collectible figure.
type Figure struct {
	Base
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// PlantPhoto is one gallery entry for a plant.
type PlantPhoto struct {
	URL   string  `json:"url"`
	Date  string  `json:"date"`
	Notes *string `json:"notes,omitempty"`
}

// Plant represents a houseplant. Every field is optional.
type Plant struct {
	Base
	Family     *string      `json:"family"`
	Genus      *string      `json:"genus"`
	Species    *string      `json:"species"`
	CommonName *string      `json:"common_name"`
	Photos     []PlantPhoto `json:"photos"`
}

// Project represents a personal project.
type Project struct {
	Base
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Publication represents a published paper or article.
type Publication struct {
	Base
	Title string  `json:"title"`
	Venue *string `json:"venue"`
	Year  *int    `json:"year"`
	URL   *string `json:"url"`
}

// Infographic represents a published infographic.
type Infographic struct {
	Base
	Title string  `json:"title"`
	Topic *string `json:"topic"`
}

// MediaLink is an external contact or social link shown on the site.
type MediaLink struct {
	Base
	Type  string  `json:"type"`
	Label *string `json:"label"`
	Value string  `json:"value"`
}

// SiteConfig holds sitewide settings. The collection is a singleton: the
// write path updates the existing row in place and the read path takes the
// lowest Seq when duplicates exist anyway.
type SiteConfig struct {
	Base
	ExternalWishURL string `json:"external_wish_url"`
	AboutBio        string `json:"about_bio"`
}
