package domain

// Patch structs list exactly the fields an update may mutate. Unsupplied
// fields are left untouched; Null clears a nullable field. Required fields
// accept values only.

// BookPatch mutates a Book.
type BookPatch struct {
	Title    Optional[string]
	Author   Optional[string]
	Genre    Optional[string]
	Language Optional[string]
	Format   Optional[string]
	Review   Optional[string]
	Opinion  Optional[string]
	Quotes   Optional[[]BookQuote]
}

// Apply patches the book in place.
func (p BookPatch) Apply(b *Book) {
	applyValue(&b.Title, p.Title)
	applyPtr(&b.Author, p.Author)
	applyPtr(&b.Genre, p.Genre)
	applyPtr(&b.Language, p.Language)
	applyPtr(&b.Format, p.Format)
	applyPtr(&b.Review, p.Review)
	applyPtr(&b.Opinion, p.Opinion)
	if q, ok := p.Quotes.Value(); ok {
		b.Quotes = q
	} else if p.Quotes.IsNull() {
		b.Quotes = nil
	}
}

// VinylRecordPatch mutates a VinylRecord.
type VinylRecordPatch struct {
	Artist   Optional[string]
	Title    Optional[string]
	Year     Optional[int]
	Genres   Optional[[]string]
	PhotoURL Optional[string]
}

// Apply patches the vinyl record in place.
func (p VinylRecordPatch) Apply(v *VinylRecord) {
	applyValue(&v.Artist, p.Artist)
	applyValue(&v.Title, p.Title)
	applyPtr(&v.Year, p.Year)
	if g, ok := p.Genres.Value(); ok {
		v.Genres = g
	} else if p.Genres.IsNull() {
		v.Genres = nil
	}
	applyPtr(&v.PhotoURL, p.PhotoURL)
}

// CoffeeBrandPatch mutates a CoffeeBrand.
type CoffeeBrandPatch struct {
	Name Optional[string]
}

// Apply patches the brand in place.
func (p CoffeeBrandPatch) Apply(b *CoffeeBrand) {
	applyValue(&b.Name, p.Name)
}

// CoffeePatch mutates a Coffee. The brand reference is immutable.
type CoffeePatch struct {
	Name       Optional[string]
	Region     Optional[string]
	Processing Optional[string]
}

// Apply patches the coffee in place.
func (p CoffeePatch) Apply(c *Coffee) {
	applyValue(&c.Name, p.Name)
	applyPtr(&c.Region, p.Region)
	applyPtr(&c.Processing, p.Processing)
}

// CoffeeReviewPatch mutates a CoffeeReview. The coffee reference is immutable.
type CoffeeReviewPatch struct {
	Method Optional[string]
	Rating Optional[float64]
	Notes  Optional[string]
}

// Apply patches the review in place.
func (p CoffeeReviewPatch) Apply(r *CoffeeReview) {
	applyValue(&r.Method, p.Method)
	applyPtr(&r.Rating, p.Rating)
	applyPtr(&r.Notes, p.Notes)
}

// FigurePatch mutates a Figure.
type FigurePatch struct {
	Name  Optional[string]
	Brand Optional[string]
}

// Apply patches the figure in place.
func (p FigurePatch) Apply(f *Figure) {
	applyValue(&f.Name, p.Name)
	applyValue(&f.Brand, p.Brand)
}

// PlantPatch mutates a Plant.
type PlantPatch struct {
	Family     Optional[string]
	Genus      Optional[string]
	Species    Optional[string]
	CommonName Optional[string]
	Photos     Optional[[]PlantPhoto]
}

// Apply patches the plant in place.
func (p PlantPatch) Apply(pl *Plant) {
	applyPtr(&pl.Family, p.Family)
	applyPtr(&pl.Genus, p.Genus)
	applyPtr(&pl.Species, p.Species)
	applyPtr(&pl.CommonName, p.CommonName)
	if ph, ok := p.Photos.Value(); ok {
		pl.Photos = ph
	} else if p.Photos.IsNull() {
		pl.Photos = nil
	}
}

// ProjectPatch mutates a Project.
type ProjectPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Tags        Optional[[]string]
}

// Apply patches the project in place.
func (p ProjectPatch) Apply(pr *Project) {
	applyValue(&pr.Name, p.Name)
	applyValue(&pr.Description, p.Description)
	if t, ok := p.Tags.Value(); ok {
		pr.Tags = t
	} else if p.Tags.IsNull() {
		pr.Tags = nil
	}
}

// PublicationPatch mutates a Publication.
type PublicationPatch struct {
	Title Optional[string]
	Venue Optional[string]
	Year  Optional[int]
	URL   Optional[string]
}

// Apply patches the publication in place.
func (p PublicationPatch) Apply(pub *Publication) {
	applyValue(&pub.Title, p.Title)
	applyPtr(&pub.Venue, p.Venue)
	applyPtr(&pub.Year, p.Year)
	applyPtr(&pub.URL, p.URL)
}

// InfographicPatch mutates an Infographic.
type InfographicPatch struct {
	Title Optional[string]
	Topic Optional[string]
}

// Apply patches the infographic in place.
func (p InfographicPatch) Apply(i *Infographic) {
	applyValue(&i.Title, p.Title)
	applyPtr(&i.Topic, p.Topic)
}

// MediaLinkPatch mutates a MediaLink.
type MediaLinkPatch struct {
	Type  Optional[string]
	Label Optional[string]
	Value Optional[string]
}

// Apply patches the link in place.
func (p MediaLinkPatch) Apply(m *MediaLink) {
	applyValue(&m.Type, p.Type)
	applyPtr(&m.Label, p.Label)
	applyValue(&m.Value, p.Value)
}

// SiteConfigPatch mutates the SiteConfig singleton.
type SiteConfigPatch struct {
	ExternalWishURL Optional[string]
	AboutBio        Optional[string]
}

// Apply patches the config in place.
func (p SiteConfigPatch) Apply(c *SiteConfig) {
	applyValue(&c.ExternalWishURL, p.ExternalWishURL)
	applyValue(&c.AboutBio, p.AboutBio)
}
