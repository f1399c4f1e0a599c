package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"shelfcore/internal/catalog"
	"shelfcore/internal/infra/persistence/memory"
	"shelfcore/pkg/domain"
)

func newTestService(t *testing.T) (*Service, *catalog.Service) {
	t.Helper()
	cat := catalog.New(memory.NewStore(), nil, nil)
	return New(cat, nil), cat
}

func TestAllDataEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)
	payload, fallback := svc.AllData(context.Background())
	if fallback {
		t.Fatalf("empty store is not a fallback case")
	}
	if !reflect.DeepEqual(payload, Empty()) {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestAllDataMapsCollections(t *testing.T) {
	svc, cat := newTestService(t)
	ctx := context.Background()

	year := 1991
	if _, err := cat.CreateVinylRecord(ctx, domain.VinylRecord{
		Artist: "Nirvana", Title: "Nevermind", Year: &year, Genres: []string{"Rock"},
	}); err != nil {
		t.Fatalf("vinyl: %v", err)
	}
	brand, err := cat.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: "Sweet Beans"})
	if err != nil {
		t.Fatalf("brand: %v", err)
	}
	coffee, err := cat.CreateCoffee(ctx, domain.Coffee{BrandID: brand.ID, Name: "Geisha"})
	if err != nil {
		t.Fatalf("coffee: %v", err)
	}
	if _, err := cat.CreateCoffeeReview(ctx, domain.CoffeeReview{CoffeeID: coffee.ID, Method: "espresso"}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := cat.UpdateSiteConfig(ctx, domain.SiteConfigPatch{
		AboutBio:        domain.Set("hi"),
		ExternalWishURL: domain.Set("https://w.example"),
	}); err != nil {
		t.Fatalf("site config: %v", err)
	}

	payload, fallback := svc.AllData(ctx)
	if fallback {
		t.Fatalf("unexpected fallback")
	}
	if payload.About.Bio != "hi" {
		t.Fatalf("bio = %q", payload.About.Bio)
	}
	if len(payload.VinylGenres) != 1 || payload.VinylGenres[0] != "Rock" {
		t.Fatalf("vinylGenres = %v", payload.VinylGenres)
	}
	if len(payload.Vinyl) != 1 || payload.Vinyl[0].Artist != "Nirvana" || *payload.Vinyl[0].Year != 1991 {
		t.Fatalf("vinyl = %+v", payload.Vinyl)
	}
	if payload.Vinyl[0].ID == "" {
		t.Fatalf("vinyl entry missing id")
	}
	if len(payload.Coffee) != 1 || payload.Coffee[0].BrandID != brand.ID {
		t.Fatalf("coffee = %+v", payload.Coffee)
	}
	if len(payload.Coffee[0].Reviews) != 1 || payload.Coffee[0].Reviews[0].Method != "espresso" {
		t.Fatalf("reviews = %+v", payload.Coffee[0].Reviews)
	}
	if payload.Media.ExternalWishURL != "https://w.example" {
		t.Fatalf("media = %+v", payload.Media)
	}
}

// The frontend contract uses a fixed mix of camelCase and snake_case keys;
// renames here break the site silently, so pin them.
func TestPayloadFieldNames(t *testing.T) {
	svc, cat := newTestService(t)
	ctx := context.Background()

	if _, err := cat.CreateVinylRecord(ctx, domain.VinylRecord{Artist: "A", Title: "T"}); err != nil {
		t.Fatalf("vinyl: %v", err)
	}
	brand, err := cat.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: "B"})
	if err != nil {
		t.Fatalf("brand: %v", err)
	}
	if _, err := cat.CreateCoffee(ctx, domain.Coffee{BrandID: brand.ID, Name: "C"}); err != nil {
		t.Fatalf("coffee: %v", err)
	}
	name := "Monstera"
	if _, err := cat.CreatePlant(ctx, domain.Plant{CommonName: &name}); err != nil {
		t.Fatalf("plant: %v", err)
	}
	if _, err := cat.CreateProject(ctx, domain.Project{Name: "P", Description: "about p"}); err != nil {
		t.Fatalf("project: %v", err)
	}

	payload, _ := svc.AllData(ctx)
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, key := range []string{
		`"vinylGenres"`, `"photo_url"`, `"brandId"`, `"commonName"`, `"desc"`, `"externalWishUrl"`, `"coffeeBrands"`,
	} {
		if !strings.Contains(body, key) {
			t.Fatalf("payload missing key %s: %s", key, body)
		}
	}
	for _, key := range []string{`"description"`, `"common_name"`, `"brand_id"`, `"opinion"`, `"quotes"`} {
		if strings.Contains(body, key) {
			t.Fatalf("payload leaks key %s", key)
		}
	}
}

type failingStore struct{}

func (failingStore) RunInTransaction(context.Context, func(domain.Transaction) error) error {
	return errors.New("backend down")
}

func (failingStore) ViewState(context.Context, func(domain.TransactionView) error) error {
	return errors.New("backend down")
}

func (failingStore) Close() error { return nil }

func TestAllDataFallsBackOnFetchError(t *testing.T) {
	svc := New(catalog.New(failingStore{}, nil, nil), nil)
	payload, fallback := svc.AllData(context.Background())
	if !fallback {
		t.Fatalf("expected fallback")
	}
	if !reflect.DeepEqual(payload, Empty()) {
		t.Fatalf("fallback payload must be the static empty shape, got %+v", payload)
	}
}

func TestDeriveGenres(t *testing.T) {
	got := deriveGenres([]domain.VinylRecord{
		{Genres: []string{"Rock", "Jazz"}},
		{Genres: []string{"Jazz", "Ambient"}},
		{Genres: nil},
	})
	want := []string{"Ambient", "Jazz", "Rock"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("genres = %v, want %v", got, want)
	}
}
