package memory

import (
	"fmt"

	"shelfcore/pkg/domain"
)

var _ domain.Transaction = (*transaction)(nil)

func (tx *transaction) CreateBook(b domain.Book) (domain.Book, error) {
	b.Base = tx.newBase()
	if err := b.Validate(); err != nil {
		return domain.Book{}, err
	}
	tx.state.books[b.ID] = cloneBook(b)
	return b, nil
}

func (tx *transaction) UpdateBook(id string, patch domain.BookPatch) (domain.Book, error) {
	current, ok := tx.state.books[id]
	if !ok {
		return domain.Book{}, domain.NotFoundError{Entity: domain.EntityBook, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Book{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.books[id] = cloneBook(current)
	return current, nil
}

func (tx *transaction) DeleteBook(id string) error {
	if _, ok := tx.state.books[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityBook, ID: id}
	}
	delete(tx.state.books, id)
	return nil
}

func (tx *transaction) CreateVinylRecord(r domain.VinylRecord) (domain.VinylRecord, error) {
	r.Base = tx.newBase()
	if r.Genres == nil {
		r.Genres = []string{}
	}
	if err := r.Validate(); err != nil {
		return domain.VinylRecord{}, err
	}
	tx.state.vinyl[r.ID] = cloneVinyl(r)
	return r, nil
}

func (tx *transaction) UpdateVinylRecord(id string, patch domain.VinylRecordPatch) (domain.VinylRecord, error) {
	current, ok := tx.state.vinyl[id]
	if !ok {
		return domain.VinylRecord{}, domain.NotFoundError{Entity: domain.EntityVinylRecord, ID: id}
	}
	patch.Apply(&current)
	if current.Genres == nil {
		current.Genres = []string{}
	}
	if err := current.Validate(); err != nil {
		return domain.VinylRecord{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.vinyl[id] = cloneVinyl(current)
	return current, nil
}

func (tx *transaction) DeleteVinylRecord(id string) error {
	if _, ok := tx.state.vinyl[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityVinylRecord, ID: id}
	}
	delete(tx.state.vinyl, id)
	return nil
}

func (tx *transaction) brandNameTaken(name, excludeID string) bool {
	for id, b := range tx.state.coffeeBrands {
		if id != excludeID && b.Name == name {
			return true
		}
	}
	return false
}

func (tx *transaction) CreateCoffeeBrand(b domain.CoffeeBrand) (domain.CoffeeBrand, error) {
	b.Base = tx.newBase()
	if err := b.Validate(); err != nil {
		return domain.CoffeeBrand{}, err
	}
	if tx.brandNameTaken(b.Name, b.ID) {
		return domain.CoffeeBrand{}, domain.ConflictError{Entity: domain.EntityCoffeeBrand, Reason: fmt.Sprintf("name %q already exists", b.Name)}
	}
	tx.state.coffeeBrands[b.ID] = b
	return b, nil
}

func (tx *transaction) UpdateCoffeeBrand(id string, patch domain.CoffeeBrandPatch) (domain.CoffeeBrand, error) {
	current, ok := tx.state.coffeeBrands[id]
	if !ok {
		return domain.CoffeeBrand{}, domain.NotFoundError{Entity: domain.EntityCoffeeBrand, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.CoffeeBrand{}, err
	}
	if tx.brandNameTaken(current.Name, id) {
		return domain.CoffeeBrand{}, domain.ConflictError{Entity: domain.EntityCoffeeBrand, Reason: fmt.Sprintf("name %q already exists", current.Name)}
	}
	current.UpdatedAt = tx.now
	tx.state.coffeeBrands[id] = current
	return current, nil
}

func (tx *transaction) DeleteCoffeeBrand(id string) error {
	if _, ok := tx.state.coffeeBrands[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityCoffeeBrand, ID: id}
	}
	for _, c := range tx.state.coffees {
		if c.BrandID == id {
			return domain.ConflictError{Entity: domain.EntityCoffeeBrand, Reason: fmt.Sprintf("still referenced by coffee %q", c.ID)}
		}
	}
	delete(tx.state.coffeeBrands, id)
	return nil
}

func (tx *transaction) CreateCoffee(c domain.Coffee) (domain.Coffee, error) {
	c.Base = tx.newBase()
	if err := c.Validate(); err != nil {
		return domain.Coffee{}, err
	}
	if _, ok := tx.state.coffeeBrands[c.BrandID]; !ok {
		return domain.Coffee{}, domain.NotFoundError{Entity: domain.EntityCoffeeBrand, ID: c.BrandID}
	}
	tx.state.coffees[c.ID] = c
	return c, nil
}

func (tx *transaction) UpdateCoffee(id string, patch domain.CoffeePatch) (domain.Coffee, error) {
	current, ok := tx.state.coffees[id]
	if !ok {
		return domain.Coffee{}, domain.NotFoundError{Entity: domain.EntityCoffee, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Coffee{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.coffees[id] = current
	return current, nil
}

// DeleteCoffee cascades to the coffee's reviews.
func (tx *transaction) DeleteCoffee(id string) error {
	if _, ok := tx.state.coffees[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityCoffee, ID: id}
	}
	for rid, r := range tx.state.reviews {
		if r.CoffeeID == id {
			delete(tx.state.reviews, rid)
		}
	}
	delete(tx.state.coffees, id)
	return nil
}

func (tx *transaction) CreateCoffeeReview(r domain.CoffeeReview) (domain.CoffeeReview, error) {
	r.Base = tx.newBase()
	if err := r.Validate(); err != nil {
		return domain.CoffeeReview{}, err
	}
	if _, ok := tx.state.coffees[r.CoffeeID]; !ok {
		return domain.CoffeeReview{}, domain.NotFoundError{Entity: domain.EntityCoffee, ID: r.CoffeeID}
	}
	tx.state.reviews[r.ID] = r
	return r, nil
}

func (tx *transaction) UpdateCoffeeReview(id string, patch domain.CoffeeReviewPatch) (domain.CoffeeReview, error) {
	current, ok := tx.state.reviews[id]
	if !ok {
		return domain.CoffeeReview{}, domain.NotFoundError{Entity: domain.EntityCoffeeReview, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.CoffeeReview{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.reviews[id] = current
	return current, nil
}

func (tx *transaction) DeleteCoffeeReview(id string) error {
	if _, ok := tx.state.reviews[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityCoffeeReview, ID: id}
	}
	delete(tx.state.reviews, id)
	return nil
}

func (tx *transaction) CreateFigure(f domain.Figure) (domain.Figure, error) {
	f.Base = tx.newBase()
	if err := f.Validate(); err != nil {
		return domain.Figure{}, err
	}
	tx.state.figures[f.ID] = f
	return f, nil
}

func (tx *transaction) UpdateFigure(id string, patch domain.FigurePatch) (domain.Figure, error) {
	current, ok := tx.state.figures[id]
	if !ok {
		return domain.Figure{}, domain.NotFoundError{Entity: domain.EntityFigure, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Figure{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.figures[id] = current
	return current, nil
}

func (tx *transaction) DeleteFigure(id string) error {
	if _, ok := tx.state.figures[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityFigure, ID: id}
	}
	delete(tx.state.figures, id)
	return nil
}

func (tx *transaction) CreatePlant(p domain.Plant) (domain.Plant, error) {
	p.Base = tx.newBase()
	if err := p.Validate(); err != nil {
		return domain.Plant{}, err
	}
	tx.state.plants[p.ID] = clonePlant(p)
	return p, nil
}

func (tx *transaction) UpdatePlant(id string, patch domain.PlantPatch) (domain.Plant, error) {
	current, ok := tx.state.plants[id]
	if !ok {
		return domain.Plant{}, domain.NotFoundError{Entity: domain.EntityPlant, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Plant{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.plants[id] = clonePlant(current)
	return current, nil
}

func (tx *transaction) DeletePlant(id string) error {
	if _, ok := tx.state.plants[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityPlant, ID: id}
	}
	delete(tx.state.plants, id)
	return nil
}

func (tx *transaction) CreateProject(p domain.Project) (domain.Project, error) {
	p.Base = tx.newBase()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := p.Validate(); err != nil {
		return domain.Project{}, err
	}
	tx.state.projects[p.ID] = cloneProject(p)
	return p, nil
}

func (tx *transaction) UpdateProject(id string, patch domain.ProjectPatch) (domain.Project, error) {
	current, ok := tx.state.projects[id]
	if !ok {
		return domain.Project{}, domain.NotFoundError{Entity: domain.EntityProject, ID: id}
	}
	patch.Apply(&current)
	if current.Tags == nil {
		current.Tags = []string{}
	}
	if err := current.Validate(); err != nil {
		return domain.Project{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.projects[id] = cloneProject(current)
	return current, nil
}

func (tx *transaction) DeleteProject(id string) error {
	if _, ok := tx.state.projects[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityProject, ID: id}
	}
	delete(tx.state.projects, id)
	return nil
}

func (tx *transaction) CreatePublication(p domain.Publication) (domain.Publication, error) {
	p.Base = tx.newBase()
	if err := p.Validate(); err != nil {
		return domain.Publication{}, err
	}
	tx.state.publications[p.ID] = p
	return p, nil
}

func (tx *transaction) UpdatePublication(id string, patch domain.PublicationPatch) (domain.Publication, error) {
	current, ok := tx.state.publications[id]
	if !ok {
		return domain.Publication{}, domain.NotFoundError{Entity: domain.EntityPublication, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Publication{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.publications[id] = current
	return current, nil
}

func (tx *transaction) DeletePublication(id string) error {
	if _, ok := tx.state.publications[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityPublication, ID: id}
	}
	delete(tx.state.publications, id)
	return nil
}

func (tx *transaction) CreateInfographic(i domain.Infographic) (domain.Infographic, error) {
	i.Base = tx.newBase()
	if err := i.Validate(); err != nil {
		return domain.Infographic{}, err
	}
	tx.state.infographics[i.ID] = i
	return i, nil
}

func (tx *transaction) UpdateInfographic(id string, patch domain.InfographicPatch) (domain.Infographic, error) {
	current, ok := tx.state.infographics[id]
	if !ok {
		return domain.Infographic{}, domain.NotFoundError{Entity: domain.EntityInfographic, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.Infographic{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.infographics[id] = current
	return current, nil
}

func (tx *transaction) DeleteInfographic(id string) error {
	if _, ok := tx.state.infographics[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityInfographic, ID: id}
	}
	delete(tx.state.infographics, id)
	return nil
}

func (tx *transaction) CreateMediaLink(m domain.MediaLink) (domain.MediaLink, error) {
	m.Base = tx.newBase()
	if err := m.Validate(); err != nil {
		return domain.MediaLink{}, err
	}
	tx.state.mediaLinks[m.ID] = m
	return m, nil
}

func (tx *transaction) UpdateMediaLink(id string, patch domain.MediaLinkPatch) (domain.MediaLink, error) {
	current, ok := tx.state.mediaLinks[id]
	if !ok {
		return domain.MediaLink{}, domain.NotFoundError{Entity: domain.EntityMediaLink, ID: id}
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return domain.MediaLink{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.mediaLinks[id] = current
	return current, nil
}

func (tx *transaction) DeleteMediaLink(id string) error {
	if _, ok := tx.state.mediaLinks[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityMediaLink, ID: id}
	}
	delete(tx.state.mediaLinks, id)
	return nil
}

// SetSiteConfig upserts the singleton row, keeping the collection at a single
// record on the write path.
func (tx *transaction) SetSiteConfig(c domain.SiteConfig) (domain.SiteConfig, error) {
	rows := sortedBySeq(tx.state.siteConfig, func(sc domain.SiteConfig) uint64 { return sc.Seq })
	if len(rows) > 0 {
		current := rows[0]
		current.ExternalWishURL = c.ExternalWishURL
		current.AboutBio = c.AboutBio
		if err := current.Validate(); err != nil {
			return domain.SiteConfig{}, err
		}
		current.UpdatedAt = tx.now
		tx.state.siteConfig[current.ID] = current
		return current, nil
	}
	c.Base = tx.newBase()
	if err := c.Validate(); err != nil {
		return domain.SiteConfig{}, err
	}
	tx.state.siteConfig[c.ID] = c
	return c, nil
}
