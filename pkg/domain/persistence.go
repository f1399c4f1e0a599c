package domain

import "context"

// Transaction exposes the mutations a persistence implementation must support
// within one atomic scope. Updates take patch structs so that unsupplied
// fields are distinguishable from cleared ones.
type Transaction interface {
	View() TransactionView

	CreateBook(Book) (Book, error)
	UpdateBook(id string, patch BookPatch) (Book, error)
	DeleteBook(id string) error

	CreateVinylRecord(VinylRecord) (VinylRecord, error)
	UpdateVinylRecord(id string, patch VinylRecordPatch) (VinylRecord, error)
	DeleteVinylRecord(id string) error

	CreateCoffeeBrand(CoffeeBrand) (CoffeeBrand, error)
	UpdateCoffeeBrand(id string, patch CoffeeBrandPatch) (CoffeeBrand, error)
	DeleteCoffeeBrand(id string) error

	CreateCoffee(Coffee) (Coffee, error)
	UpdateCoffee(id string, patch CoffeePatch) (Coffee, error)
	DeleteCoffee(id string) error

	CreateCoffeeReview(CoffeeReview) (CoffeeReview, error)
	UpdateCoffeeReview(id string, patch CoffeeReviewPatch) (CoffeeReview, error)
	DeleteCoffeeReview(id string) error

	CreateFigure(Figure) (Figure, error)
	UpdateFigure(id string, patch FigurePatch) (Figure, error)
	DeleteFigure(id string) error

	CreatePlant(Plant) (Plant, error)
	UpdatePlant(id string, patch PlantPatch) (Plant, error)
	DeletePlant(id string) error

	CreateProject(Project) (Project, error)
	UpdateProject(id string, patch ProjectPatch) (Project, error)
	DeleteProject(id string) error

	CreatePublication(Publication) (Publication, error)
	UpdatePublication(id string, patch PublicationPatch) (Publication, error)
	DeletePublication(id string) error

	CreateInfographic(Infographic) (Infographic, error)
	UpdateInfographic(id string, patch InfographicPatch) (Infographic, error)
	DeleteInfographic(id string) error

	CreateMediaLink(MediaLink) (MediaLink, error)
	UpdateMediaLink(id string, patch MediaLinkPatch) (MediaLink, error)
	DeleteMediaLink(id string) error

	// SetSiteConfig upserts the singleton: it updates the existing row when
	// one exists and creates it otherwise.
	SetSiteConfig(SiteConfig) (SiteConfig, error)
}

// TransactionView provides read-only access to store state. Lists are in
// insertion order.
type TransactionView interface {
	ListBooks() []Book
	FindBook(id string) (Book, bool)
	ListVinylRecords() []VinylRecord
	FindVinylRecord(id string) (VinylRecord, bool)
	ListCoffeeBrands() []CoffeeBrand
	FindCoffeeBrand(id string) (CoffeeBrand, bool)
	ListCoffees() []Coffee
	FindCoffee(id string) (Coffee, bool)
	ListCoffeeReviews() []CoffeeReview
	ListCoffeeReviewsFor(coffeeID string) []CoffeeReview
	FindCoffeeReview(id string) (CoffeeReview, bool)
	ListFigures() []Figure
	FindFigure(id string) (Figure, bool)
	ListPlants() []Plant
	FindPlant(id string) (Plant, bool)
	ListProjects() []Project
	FindProject(id string) (Project, bool)
	ListPublications() []Publication
	FindPublication(id string) (Publication, bool)
	ListInfographics() []Infographic
	FindInfographic(id string) (Infographic, bool)
	ListMediaLinks() []MediaLink
	FindMediaLink(id string) (MediaLink, bool)
	// SiteConfig resolves the singleton (lowest Seq wins when duplicates exist).
	SiteConfig() (SiteConfig, bool)
}

// PersistentStore is the minimal abstraction over durable backends consumed
// by the catalog service.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) error
	ViewState(ctx context.Context, fn func(TransactionView) error) error
	Close() error
}
