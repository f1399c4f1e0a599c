package memory

import (
	"context"
	"fmt"
	"testing"

	"shelfcore/pkg/domain"
)

func mustCreateBook(t *testing.T, s *Store, title string) domain.Book {
	t.Helper()
	var out domain.Book
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateBook(domain.Book{Title: title})
		return err
	})
	if err != nil {
		t.Fatalf("create book %q: %v", title, err)
	}
	return out
}

func mustCreateBrand(t *testing.T, s *Store, name string) domain.CoffeeBrand {
	t.Helper()
	var out domain.CoffeeBrand
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateCoffeeBrand(domain.CoffeeBrand{Name: name})
		return err
	})
	if err != nil {
		t.Fatalf("create brand %q: %v", name, err)
	}
	return out
}

func mustCreateCoffee(t *testing.T, s *Store, brandID, name string) domain.Coffee {
	t.Helper()
	var out domain.Coffee
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateCoffee(domain.Coffee{BrandID: brandID, Name: name})
		return err
	})
	if err != nil {
		t.Fatalf("create coffee %q: %v", name, err)
	}
	return out
}

func TestCreateAssignsBaseFields(t *testing.T) {
	s := NewStore()
	book := mustCreateBook(t, s, "Dune")
	if book.ID == "" {
		t.Fatalf("missing id")
	}
	if book.Seq == 0 {
		t.Fatalf("missing seq")
	}
	if book.CreatedAt.IsZero() || !book.CreatedAt.Equal(book.UpdatedAt) {
		t.Fatalf("timestamps not initialized: %v / %v", book.CreatedAt, book.UpdatedAt)
	}
}

func TestCreateValidates(t *testing.T) {
	s := NewStore()
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateBook(domain.Book{Title: "  "})
		return err
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// failed transaction must not commit anything
	_ = s.ViewState(context.Background(), func(v domain.TransactionView) error {
		if n := len(v.ListBooks()); n != 0 {
			t.Fatalf("expected empty store, got %d books", n)
		}
		return nil
	})
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		mustCreateBook(t, s, fmt.Sprintf("book-%d", i))
	}
	_ = s.ViewState(context.Background(), func(v domain.TransactionView) error {
		books := v.ListBooks()
		if len(books) != 5 {
			t.Fatalf("got %d books", len(books))
		}
		for i, b := range books {
			if want := fmt.Sprintf("book-%d", i); b.Title != want {
				t.Fatalf("position %d = %q, want %q", i, b.Title, want)
			}
		}
		return nil
	})
}

func TestUpdatePatchSemantics(t *testing.T) {
	s := NewStore()
	var book domain.Book
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		book, err = tx.CreateBook(domain.Book{Title: "Dune", Author: strPtr("Herbert"), Genre: strPtr("Sci-Fi")})
		return err
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		updated, err := tx.UpdateBook(book.ID, domain.BookPatch{Author: domain.Null[string]()})
		if err != nil {
			return err
		}
		if updated.Author != nil {
			t.Fatalf("author should be cleared")
		}
		if updated.Genre == nil || *updated.Genre != "Sci-Fi" {
			t.Fatalf("genre must survive an unrelated patch")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	s := NewStore()
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateBook("nope", domain.BookPatch{Title: domain.Set("x")})
		return err
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBrandNameUnique(t *testing.T) {
	s := NewStore()
	mustCreateBrand(t, s, "Sweet Beans")
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateCoffeeBrand(domain.CoffeeBrand{Name: "Sweet Beans"})
		return err
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	other := mustCreateBrand(t, s, "Dark Horse")
	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateCoffeeBrand(other.ID, domain.CoffeeBrandPatch{Name: domain.Set("Sweet Beans")})
		return err
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on rename, got %v", err)
	}
}

func TestCoffeeRequiresBrand(t *testing.T) {
	s := NewStore()
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateCoffee(domain.Coffee{BrandID: "ghost", Name: "Geisha"})
		return err
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found for missing brand, got %v", err)
	}
}

func TestBrandDeleteRefusedWhileReferenced(t *testing.T) {
	s := NewStore()
	brand := mustCreateBrand(t, s, "Sweet Beans")
	coffee := mustCreateCoffee(t, s, brand.ID, "Geisha")

	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteCoffeeBrand(brand.ID)
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict while referenced, got %v", err)
	}

	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if err := tx.DeleteCoffee(coffee.ID); err != nil {
			return err
		}
		return tx.DeleteCoffeeBrand(brand.ID)
	})
	if err != nil {
		t.Fatalf("delete after unreference: %v", err)
	}
}

func TestCoffeeDeleteCascadesReviews(t *testing.T) {
	s := NewStore()
	brand := mustCreateBrand(t, s, "Sweet Beans")
	coffee := mustCreateCoffee(t, s, brand.ID, "Geisha")

	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		for _, method := range []string{"espresso", "filter"} {
			if _, err := tx.CreateCoffeeReview(domain.CoffeeReview{CoffeeID: coffee.ID, Method: method}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("create reviews: %v", err)
	}

	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteCoffee(coffee.ID)
	})
	if err != nil {
		t.Fatalf("delete coffee: %v", err)
	}

	_ = s.ViewState(context.Background(), func(v domain.TransactionView) error {
		if n := len(v.ListCoffeeReviewsFor(coffee.ID)); n != 0 {
			t.Fatalf("expected cascade, %d reviews left", n)
		}
		if n := len(v.ListCoffeeReviews()); n != 0 {
			t.Fatalf("expected no reviews at all, got %d", n)
		}
		return nil
	})
}

func TestSiteConfigUpsert(t *testing.T) {
	s := NewStore()
	err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SetSiteConfig(domain.SiteConfig{AboutBio: "hello"})
		return err
	})
	if !domain.IsValidation(err) {
		t.Fatalf("partial config must be rejected, got %v", err)
	}
	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SetSiteConfig(domain.SiteConfig{AboutBio: "hello", ExternalWishURL: "https://w.example"})
		return err
	})
	if err != nil {
		t.Fatalf("first set: %v", err)
	}
	err = s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SetSiteConfig(domain.SiteConfig{AboutBio: "updated", ExternalWishURL: "https://w.example"})
		return err
	})
	if err != nil {
		t.Fatalf("second set: %v", err)
	}
	_ = s.ViewState(context.Background(), func(v domain.TransactionView) error {
		cfg, ok := v.SiteConfig()
		if !ok {
			t.Fatalf("config missing")
		}
		if cfg.ExternalWishURL != "https://w.example" || cfg.AboutBio != "updated" {
			t.Fatalf("unexpected config %+v", cfg)
		}
		return nil
	})
	// the write path must keep a single row
	if n := len(s.ExportState().SiteConfig); n != 1 {
		t.Fatalf("expected singleton row, got %d", n)
	}
}

func TestSnapshotRoundTripKeepsOrderAndSequence(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		mustCreateBook(t, s, fmt.Sprintf("book-%d", i))
	}
	snap := s.ExportState()

	restored := NewStore()
	restored.ImportState(snap)
	newBook := mustCreateBook(t, restored, "book-3")

	_ = restored.ViewState(context.Background(), func(v domain.TransactionView) error {
		books := v.ListBooks()
		if len(books) != 4 {
			t.Fatalf("got %d books", len(books))
		}
		if books[3].ID != newBook.ID {
			t.Fatalf("new record must sort last")
		}
		for i := 1; i < len(books); i++ {
			if books[i].Seq <= books[i-1].Seq {
				t.Fatalf("sequence not monotonic after import")
			}
		}
		return nil
	})
}

func strPtr(s string) *string { return &s }
