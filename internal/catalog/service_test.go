package catalog

import (
	"context"
	"strings"
	"testing"

	blobmemory "shelfcore/internal/infra/blob/memory"
	"shelfcore/internal/infra/persistence/memory"
	"shelfcore/pkg/domain"
)

func newTestService(t *testing.T) (*Service, *blobmemory.Store) {
	t.Helper()
	assets := blobmemory.New()
	return New(memory.NewStore(), assets, nil), assets
}

func TestAddBookQuote(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, domain.Book{Title: "Dune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	page := 42
	book, err = svc.AddBookQuote(ctx, book.ID, domain.BookQuote{Text: "Fear is the mind-killer.", Page: &page})
	if err != nil {
		t.Fatalf("add quote: %v", err)
	}
	if len(book.Quotes) != 1 || book.Quotes[0].Text != "Fear is the mind-killer." {
		t.Fatalf("quotes = %+v", book.Quotes)
	}

	book, err = svc.AddBookQuote(ctx, book.ID, domain.BookQuote{Text: "Second."})
	if err != nil {
		t.Fatalf("add second quote: %v", err)
	}
	if len(book.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(book.Quotes))
	}

	book, err = svc.RemoveBookQuote(ctx, book.ID, 0)
	if err != nil {
		t.Fatalf("remove quote: %v", err)
	}
	if len(book.Quotes) != 1 || book.Quotes[0].Text != "Second." {
		t.Fatalf("quotes after removal = %+v", book.Quotes)
	}

	if _, err := svc.RemoveBookQuote(ctx, book.ID, 5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad index, got %v", err)
	}
}

func TestSetVinylPhotoReplacesOldAsset(t *testing.T) {
	svc, assets := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreateVinylRecord(ctx, domain.VinylRecord{Artist: "Nirvana", Title: "Nevermind"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err = svc.SetVinylPhoto(ctx, rec.ID, strings.NewReader("first"), "image/jpeg")
	if err != nil {
		t.Fatalf("set photo: %v", err)
	}
	firstURL := *rec.PhotoURL

	rec, err = svc.SetVinylPhoto(ctx, rec.ID, strings.NewReader("second"), "image/jpeg")
	if err != nil {
		t.Fatalf("replace photo: %v", err)
	}
	if *rec.PhotoURL == firstURL {
		t.Fatalf("photo url should change on replace")
	}
	if _, _, ok := assets.Object(firstURL); ok {
		t.Fatalf("old asset should be discarded")
	}
	if assets.Len() != 1 {
		t.Fatalf("expected 1 asset, got %d", assets.Len())
	}
}

func TestSetVinylPhotoMissingRecordDiscardsUpload(t *testing.T) {
	svc, assets := newTestService(t)
	_, err := svc.SetVinylPhoto(context.Background(), "ghost", strings.NewReader("img"), "image/jpeg")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if assets.Len() != 0 {
		t.Fatalf("orphan upload left behind")
	}
}

func TestRemoveVinylPhoto(t *testing.T) {
	svc, assets := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreateVinylRecord(ctx, domain.VinylRecord{Artist: "A", Title: "T"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetVinylPhoto(ctx, rec.ID, strings.NewReader("img"), "image/jpeg"); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec, err = svc.RemoveVinylPhoto(ctx, rec.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.PhotoURL != nil {
		t.Fatalf("photo url should be cleared")
	}
	if assets.Len() != 0 {
		t.Fatalf("asset should be deleted")
	}
}

func TestDeleteVinylRecordDiscardsAsset(t *testing.T) {
	svc, assets := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CreateVinylRecord(ctx, domain.VinylRecord{Artist: "A", Title: "T"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetVinylPhoto(ctx, rec.ID, strings.NewReader("img"), "image/jpeg"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.DeleteVinylRecord(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if assets.Len() != 0 {
		t.Fatalf("asset should be deleted with the record")
	}
}

func TestPlantPhotoLifecycle(t *testing.T) {
	svc, assets := newTestService(t)
	ctx := context.Background()

	name := "Monstera"
	plant, err := svc.CreatePlant(ctx, domain.Plant{CommonName: &name})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	plant, err = svc.AddPlantPhoto(ctx, plant.ID, strings.NewReader("img"), "image/jpeg", "2026-08-31", nil)
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if len(plant.Photos) != 1 || plant.Photos[0].Date != "2026-08-31" {
		t.Fatalf("photos = %+v", plant.Photos)
	}

	plant, err = svc.RemovePlantPhoto(ctx, plant.ID, 0)
	if err != nil {
		t.Fatalf("remove photo: %v", err)
	}
	if len(plant.Photos) != 0 {
		t.Fatalf("photo not removed")
	}
	if assets.Len() != 0 {
		t.Fatalf("asset should be deleted")
	}
}

func TestListCoffeesWithReviews(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	brand, err := svc.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: "Sweet Beans"})
	if err != nil {
		t.Fatalf("brand: %v", err)
	}
	first, err := svc.CreateCoffee(ctx, domain.Coffee{BrandID: brand.ID, Name: "Geisha"})
	if err != nil {
		t.Fatalf("coffee: %v", err)
	}
	second, err := svc.CreateCoffee(ctx, domain.Coffee{BrandID: brand.ID, Name: "Bourbon"})
	if err != nil {
		t.Fatalf("coffee: %v", err)
	}
	if _, err := svc.CreateCoffeeReview(ctx, domain.CoffeeReview{CoffeeID: first.ID, Method: "espresso"}); err != nil {
		t.Fatalf("review: %v", err)
	}

	coffees, err := svc.ListCoffeesWithReviews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(coffees) != 2 {
		t.Fatalf("got %d coffees", len(coffees))
	}
	if coffees[0].ID != first.ID || coffees[1].ID != second.ID {
		t.Fatalf("insertion order lost")
	}
	if len(coffees[0].Reviews) != 1 || coffees[0].Reviews[0].Method != "espresso" {
		t.Fatalf("reviews = %+v", coffees[0].Reviews)
	}
	if coffees[1].Reviews == nil || len(coffees[1].Reviews) != 0 {
		t.Fatalf("reviewless coffee must carry an empty slice")
	}
}

func TestDistinctQueries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, rec := range []domain.VinylRecord{
		{Artist: "A", Title: "1", Genres: []string{"Rock", "Jazz"}},
		{Artist: "B", Title: "2", Genres: []string{"Jazz", "Ambient"}},
	} {
		if _, err := svc.CreateVinylRecord(ctx, rec); err != nil {
			t.Fatalf("vinyl: %v", err)
		}
	}
	genres, err := svc.VinylGenres(ctx)
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	want := []string{"Ambient", "Jazz", "Rock"}
	if len(genres) != len(want) {
		t.Fatalf("genres = %v", genres)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Fatalf("genres = %v, want %v", genres, want)
		}
	}

	scifi := "Sci-Fi"
	if _, err := svc.CreateBook(ctx, domain.Book{Title: "Dune", Genre: &scifi}); err != nil {
		t.Fatalf("book: %v", err)
	}
	bookGenres, err := svc.BookGenres(ctx)
	if err != nil {
		t.Fatalf("book genres: %v", err)
	}
	if len(bookGenres) != 1 || bookGenres[0] != "Sci-Fi" {
		t.Fatalf("book genres = %v", bookGenres)
	}
}

func TestSearchQueries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, rec := range []domain.VinylRecord{
		{Artist: "Nirvana", Title: "Nevermind", Genres: []string{"Rock", "Grunge"}},
		{Artist: "Miles Davis", Title: "Kind of Blue", Genres: []string{"Jazz"}},
	} {
		if _, err := svc.CreateVinylRecord(ctx, rec); err != nil {
			t.Fatalf("vinyl: %v", err)
		}
	}
	author := "Frank Herbert"
	if _, err := svc.CreateBook(ctx, domain.Book{Title: "Dune", Author: &author}); err != nil {
		t.Fatalf("book: %v", err)
	}

	records, err := svc.SearchVinylRecords(ctx, "BLUE")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 1 || records[0].Artist != "Miles Davis" {
		t.Fatalf("records = %+v", records)
	}

	records, err = svc.VinylRecordsByGenre(ctx, "grunge")
	if err != nil {
		t.Fatalf("by genre: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Nevermind" {
		t.Fatalf("records = %+v", records)
	}

	books, err := svc.SearchBooks(ctx, "herbert")
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Fatalf("books = %+v", books)
	}

	books, err = svc.SearchBooks(ctx, "tolkien")
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected no matches, got %+v", books)
	}
}

func TestUpdateSiteConfigPartialPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// both fields are required, a lone bio cannot seed the config
	if _, err := svc.UpdateSiteConfig(ctx, domain.SiteConfigPatch{AboutBio: domain.Set("hello")}); !domain.IsValidation(err) {
		t.Fatalf("partial first write must be rejected, got %v", err)
	}

	if _, err := svc.UpdateSiteConfig(ctx, domain.SiteConfigPatch{
		ExternalWishURL: domain.Set("https://w.example"),
		AboutBio:        domain.Set("hello"),
	}); err != nil {
		t.Fatalf("first patch: %v", err)
	}
	if _, err := svc.UpdateSiteConfig(ctx, domain.SiteConfigPatch{AboutBio: domain.Set("updated")}); err != nil {
		t.Fatalf("second patch: %v", err)
	}

	cfg, ok, err := svc.SiteConfig(ctx)
	if err != nil || !ok {
		t.Fatalf("site config: %v, %v", ok, err)
	}
	if cfg.AboutBio != "updated" || cfg.ExternalWishURL != "https://w.example" {
		t.Fatalf("config = %+v", cfg)
	}

	if _, err := svc.UpdateSiteConfig(ctx, domain.SiteConfigPatch{AboutBio: domain.Set("  ")}); !domain.IsValidation(err) {
		t.Fatalf("blank bio must be rejected, got %v", err)
	}
}
