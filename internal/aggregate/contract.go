// Package aggregate builds the composite payload served to the site
// frontend. Field names follow the frontend contract, which mixes camelCase
// and snake_case for historical reasons.
package aggregate

// About carries the bio shown on the about page.
type About struct {
	Bio string `json:"bio"`
}

// VinylEntry is one vinyl record in the payload.
type VinylEntry struct {
	ID       string   `json:"id"`
	Artist   string   `json:"artist"`
	Title    string   `json:"title"`
	Year     *int     `json:"year"`
	Genres   []string `json:"genres"`
	PhotoURL *string  `json:"photo_url"`
}

// BookEntry is one book in the payload. Quotes and opinions stay private to
// the admin surface.
type BookEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   *string `json:"author"`
	Genre    *string `json:"genre"`
	Language *string `json:"language"`
	Format   *string `json:"format"`
	Review   *string `json:"review"`
}

// CoffeeBrandEntry is one roaster in the payload.
type CoffeeBrandEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CoffeeReviewEntry is one tasting note nested under its coffee.
type CoffeeReviewEntry struct {
	Method string   `json:"method"`
	Rating *float64 `json:"rating"`
	Notes  *string  `json:"notes"`
}

// CoffeeEntry is one coffee with its reviews attached.
type CoffeeEntry struct {
	ID         string              `json:"id"`
	BrandID    string              `json:"brandId"`
	Name       string              `json:"name"`
	Region     *string             `json:"region"`
	Processing *string             `json:"processing"`
	Reviews    []CoffeeReviewEntry `json:"reviews"`
}

// FigureEntry is one collectible figure in the payload.
type FigureEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// ProjectEntry is one project in the payload.
type ProjectEntry struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Desc string   `json:"desc"`
	Tags []string `json:"tags"`
}

// PublicationEntry is one publication in the payload.
type PublicationEntry struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Venue *string `json:"venue"`
	Year  *int    `json:"year"`
	URL   *string `json:"url"`
}

// InfographicEntry is one infographic in the payload.
type InfographicEntry struct {
	ID    string  `json:"id"`
	Topic *string `json:"topic"`
	Title string  `json:"title"`
}

// PlantEntry is one plant in the payload.
type PlantEntry struct {
	ID         string  `json:"id"`
	Family     *string `json:"family"`
	Genus      *string `json:"genus"`
	Species    *string `json:"species"`
	CommonName *string `json:"commonName"`
}

// MediaLinkEntry is one external link in the payload.
type MediaLinkEntry struct {
	Type  string  `json:"type"`
	Label *string `json:"label"`
	Value string  `json:"value"`
}

// Media groups the wish-list URL with the link list.
type Media struct {
	ExternalWishURL string           `json:"externalWishUrl"`
	Links           []MediaLinkEntry `json:"links"`
}

// Payload is the composite structure the frontend consumes.
type Payload struct {
	About        About              `json:"about"`
	VinylGenres  []string           `json:"vinylGenres"`
	Vinyl        []VinylEntry       `json:"vinyl"`
	Books        []BookEntry        `json:"books"`
	CoffeeBrands []CoffeeBrandEntry `json:"coffeeBrands"`
	Coffee       []CoffeeEntry      `json:"coffee"`
	Figures      []FigureEntry      `json:"figures"`
	Projects     []ProjectEntry     `json:"projects"`
	Publications []PublicationEntry `json:"publications"`
	Infographics []InfographicEntry `json:"infographics"`
	Plants       []PlantEntry       `json:"plants"`
	Media        Media              `json:"media"`
}

// Empty is the static fallback returned when any fetch fails: well formed,
// every list empty, every string empty.
func Empty() Payload {
	return Payload{
		About:        About{Bio: ""},
		VinylGenres:  []string{},
		Vinyl:        []VinylEntry{},
		Books:        []BookEntry{},
		CoffeeBrands: []CoffeeBrandEntry{},
		Coffee:       []CoffeeEntry{},
		Figures:      []FigureEntry{},
		Projects:     []ProjectEntry{},
		Publications: []PublicationEntry{},
		Infographics: []InfographicEntry{},
		Plants:       []PlantEntry{},
		Media:        Media{ExternalWishURL: "", Links: []MediaLinkEntry{}},
	}
}
