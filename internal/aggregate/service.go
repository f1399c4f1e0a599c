package aggregate

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"shelfcore/internal/catalog"
	"shelfcore/pkg/domain"
)

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Service assembles the composite payload from the catalog.
type Service struct {
	catalog *catalog.Service
	log     Logger
}

// New constructs a Service. A nil logger disables logging.
func New(c *catalog.Service, log Logger) *Service {
	if log == nil {
		log = nopLogger{}
	}
	return &Service{catalog: c, log: log}
}

// AllData fetches every collection concurrently and maps it into the
// frontend contract. When any fetch fails the static empty fallback is
// returned instead, never partial data; fallback reports that case.
func (s *Service) AllData(ctx context.Context) (payload Payload, fallback bool) {
	var (
		vinyl        []domain.VinylRecord
		books        []domain.Book
		brands       []domain.CoffeeBrand
		coffees      []catalog.CoffeeWithReviews
		figures      []domain.Figure
		projects     []domain.Project
		publications []domain.Publication
		infographics []domain.Infographic
		plants       []domain.Plant
		links        []domain.MediaLink
		siteCfg      domain.SiteConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { vinyl, err = s.catalog.ListVinylRecords(gctx); return })
	g.Go(func() (err error) { books, err = s.catalog.ListBooks(gctx); return })
	g.Go(func() (err error) { brands, err = s.catalog.ListCoffeeBrands(gctx); return })
	g.Go(func() (err error) { coffees, err = s.catalog.ListCoffeesWithReviews(gctx); return })
	g.Go(func() (err error) { figures, err = s.catalog.ListFigures(gctx); return })
	g.Go(func() (err error) { projects, err = s.catalog.ListProjects(gctx); return })
	g.Go(func() (err error) { publications, err = s.catalog.ListPublications(gctx); return })
	g.Go(func() (err error) { infographics, err = s.catalog.ListInfographics(gctx); return })
	g.Go(func() (err error) { plants, err = s.catalog.ListPlants(gctx); return })
	g.Go(func() (err error) { links, err = s.catalog.ListMediaLinks(gctx); return })
	g.Go(func() (err error) { siteCfg, _, err = s.catalog.SiteConfig(gctx); return })
	if err := g.Wait(); err != nil {
		s.log.Printf("aggregate fetch failed, serving fallback: %v", err)
		return Empty(), true
	}

	out := Payload{
		About:        About{Bio: siteCfg.AboutBio},
		VinylGenres:  deriveGenres(vinyl),
		Vinyl:        mapSlice(vinyl, mapVinyl),
		Books:        mapSlice(books, mapBook),
		CoffeeBrands: mapSlice(brands, mapCoffeeBrand),
		Coffee:       mapSlice(coffees, mapCoffee),
		Figures:      mapSlice(figures, mapFigure),
		Projects:     mapSlice(projects, mapProject),
		Publications: mapSlice(publications, mapPublication),
		Infographics: mapSlice(infographics, mapInfographic),
		Plants:       mapSlice(plants, mapPlant),
		Media: Media{
			ExternalWishURL: siteCfg.ExternalWishURL,
			Links:           mapSlice(links, mapMediaLink),
		},
	}
	return out, false
}

func mapSlice[In, Out any](in []In, fn func(In) Out) []Out {
	out := make([]Out, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// deriveGenres unions every record's genres, deduplicated and sorted so the
// list is stable across runs.
func deriveGenres(records []domain.VinylRecord) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, rec := range records {
		for _, g := range rec.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

func mapVinyl(v domain.VinylRecord) VinylEntry {
	return VinylEntry{
		ID:       v.ID,
		Artist:   v.Artist,
		Title:    v.Title,
		Year:     v.Year,
		Genres:   orEmpty(v.Genres),
		PhotoURL: v.PhotoURL,
	}
}

func mapBook(b domain.Book) BookEntry {
	return BookEntry{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Genre:    b.Genre,
		Language: b.Language,
		Format:   b.Format,
		Review:   b.Review,
	}
}

func mapCoffeeBrand(b domain.CoffeeBrand) CoffeeBrandEntry {
	return CoffeeBrandEntry{ID: b.ID, Name: b.Name}
}

func mapCoffee(c catalog.CoffeeWithReviews) CoffeeEntry {
	return CoffeeEntry{
		ID:         c.ID,
		BrandID:    c.BrandID,
		Name:       c.Name,
		Region:     c.Region,
		Processing: c.Processing,
		Reviews:    mapSlice(c.Reviews, mapCoffeeReview),
	}
}

func mapCoffeeReview(r domain.CoffeeReview) CoffeeReviewEntry {
	return CoffeeReviewEntry{Method: r.Method, Rating: r.Rating, Notes: r.Notes}
}

func mapFigure(f domain.Figure) FigureEntry {
	return FigureEntry{ID: f.ID, Name: f.Name, Brand: f.Brand}
}

func mapProject(p domain.Project) ProjectEntry {
	return ProjectEntry{ID: p.ID, Name: p.Name, Desc: p.Description, Tags: orEmpty(p.Tags)}
}

func mapPublication(p domain.Publication) PublicationEntry {
	return PublicationEntry{ID: p.ID, Title: p.Title, Venue: p.Venue, Year: p.Year, URL: p.URL}
}

func mapInfographic(i domain.Infographic) InfographicEntry {
	return InfographicEntry{ID: i.ID, Topic: i.Topic, Title: i.Title}
}

func mapPlant(p domain.Plant) PlantEntry {
	return PlantEntry{ID: p.ID, Family: p.Family, Genus: p.Genus, Species: p.Species, CommonName: p.CommonName}
}

func mapMediaLink(m domain.MediaLink) MediaLinkEntry {
	return MediaLinkEntry{Type: m.Type, Label: m.Label, Value: m.Value}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
