package memory

import (
	"shelfcore/pkg/domain"
)

// transactionView exposes a read-only snapshot of store state. Lists are
// ordered by insertion sequence.
type transactionView struct {
	state *memoryState
}

var _ domain.TransactionView = transactionView{}

func (v transactionView) ListBooks() []domain.Book {
	out := sortedBySeq(v.state.books, func(b domain.Book) uint64 { return b.Seq })
	for i := range out {
		out[i] = cloneBook(out[i])
	}
	return out
}

func (v transactionView) FindBook(id string) (domain.Book, bool) {
	b, ok := v.state.books[id]
	if !ok {
		return domain.Book{}, false
	}
	return cloneBook(b), true
}

func (v transactionView) ListVinylRecords() []domain.VinylRecord {
	out := sortedBySeq(v.state.vinyl, func(r domain.VinylRecord) uint64 { return r.Seq })
	for i := range out {
		out[i] = cloneVinyl(out[i])
	}
	return out
}

func (v transactionView) FindVinylRecord(id string) (domain.VinylRecord, bool) {
	r, ok := v.state.vinyl[id]
	if !ok {
		return domain.VinylRecord{}, false
	}
	return cloneVinyl(r), true
}

func (v transactionView) ListCoffeeBrands() []domain.CoffeeBrand {
	return sortedBySeq(v.state.coffeeBrands, func(b domain.CoffeeBrand) uint64 { return b.Seq })
}

func (v transactionView) FindCoffeeBrand(id string) (domain.CoffeeBrand, bool) {
	b, ok := v.state.coffeeBrands[id]
	return b, ok
}

func (v transactionView) ListCoffees() []domain.Coffee {
	return sortedBySeq(v.state.coffees, func(c domain.Coffee) uint64 { return c.Seq })
}

func (v transactionView) FindCoffee(id string) (domain.Coffee, bool) {
	c, ok := v.state.coffees[id]
	return c, ok
}

func (v transactionView) ListCoffeeReviews() []domain.CoffeeReview {
	return sortedBySeq(v.state.reviews, func(r domain.CoffeeReview) uint64 { return r.Seq })
}

func (v transactionView) ListCoffeeReviewsFor(coffeeID string) []domain.CoffeeReview {
	filtered := make(map[string]domain.CoffeeReview)
	for id, r := range v.state.reviews {
		if r.CoffeeID == coffeeID {
			filtered[id] = r
		}
	}
	return sortedBySeq(filtered, func(r domain.CoffeeReview) uint64 { return r.Seq })
}

func (v transactionView) FindCoffeeReview(id string) (domain.CoffeeReview, bool) {
	r, ok := v.state.reviews[id]
	return r, ok
}

func (v transactionView) ListFigures() []domain.Figure {
	return sortedBySeq(v.state.figures, func(f domain.Figure) uint64 { return f.Seq })
}

func (v transactionView) FindFigure(id string) (domain.Figure, bool) {
	f, ok := v.state.figures[id]
	return f, ok
}

func (v transactionView) ListPlants() []domain.Plant {
	out := sortedBySeq(v.state.plants, func(p domain.Plant) uint64 { return p.Seq })
	for i := range out {
		out[i] = clonePlant(out[i])
	}
	return out
}

func (v transactionView) FindPlant(id string) (domain.Plant, bool) {
	p, ok := v.state.plants[id]
	if !ok {
		return domain.Plant{}, false
	}
	return clonePlant(p), true
}

func (v transactionView) ListProjects() []domain.Project {
	out := sortedBySeq(v.state.projects, func(p domain.Project) uint64 { return p.Seq })
	for i := range out {
		out[i] = cloneProject(out[i])
	}
	return out
}

func (v transactionView) FindProject(id string) (domain.Project, bool) {
	p, ok := v.state.projects[id]
	if !ok {
		return domain.Project{}, false
	}
	return cloneProject(p), true
}

func (v transactionView) ListPublications() []domain.Publication {
	return sortedBySeq(v.state.publications, func(p domain.Publication) uint64 { return p.Seq })
}

func (v transactionView) FindPublication(id string) (domain.Publication, bool) {
	p, ok := v.state.publications[id]
	return p, ok
}

func (v transactionView) ListInfographics() []domain.Infographic {
	return sortedBySeq(v.state.infographics, func(i domain.Infographic) uint64 { return i.Seq })
}

func (v transactionView) FindInfographic(id string) (domain.Infographic, bool) {
	i, ok := v.state.infographics[id]
	return i, ok
}

func (v transactionView) ListMediaLinks() []domain.MediaLink {
	return sortedBySeq(v.state.mediaLinks, func(m domain.MediaLink) uint64 { return m.Seq })
}

func (v transactionView) FindMediaLink(id string) (domain.MediaLink, bool) {
	m, ok := v.state.mediaLinks[id]
	return m, ok
}

// SiteConfig resolves the singleton row. When duplicates exist the lowest
// sequence wins, making the tie-break deterministic.
func (v transactionView) SiteConfig() (domain.SiteConfig, bool) {
	rows := sortedBySeq(v.state.siteConfig, func(c domain.SiteConfig) uint64 { return c.Seq })
	if len(rows) == 0 {
		return domain.SiteConfig{}, false
	}
	return rows[0], true
}
