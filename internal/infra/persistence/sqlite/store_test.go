package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"shelfcore/pkg/domain"
)

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var book domain.Book
	err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		book, err = tx.CreateBook(domain.Book{Title: "Dune"})
		if err != nil {
			return err
		}
		_, err = tx.CreateVinylRecord(domain.VinylRecord{Artist: "Nirvana", Title: "Nevermind", Genres: []string{"Rock"}})
		return err
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	_ = reopened.ViewState(context.Background(), func(v domain.TransactionView) error {
		got, ok := v.FindBook(book.ID)
		if !ok {
			t.Fatalf("book not restored")
		}
		if got.Title != "Dune" {
			t.Fatalf("title = %q", got.Title)
		}
		records := v.ListVinylRecords()
		if len(records) != 1 || len(records[0].Genres) != 1 || records[0].Genres[0] != "Rock" {
			t.Fatalf("vinyl not restored: %+v", records)
		}
		return nil
	})
}

func TestFailedTransactionLeavesSnapshotUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateBook(domain.Book{Title: ""})
		return err
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_ = store.ViewState(context.Background(), func(v domain.TransactionView) error {
		if n := len(v.ListBooks()); n != 0 {
			t.Fatalf("expected no books, got %d", n)
		}
		return nil
	})
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var first domain.Figure
	err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		first, err = tx.CreateFigure(domain.Figure{Name: "Rei", Brand: "Kotobukiya"})
		return err
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	var second domain.Figure
	err = reopened.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		second, err = tx.CreateFigure(domain.Figure{Name: "Asuka", Brand: "Kotobukiya"})
		return err
	})
	if err != nil {
		t.Fatalf("write after reopen: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Fatalf("sequence regressed: %d after %d", second.Seq, first.Seq)
	}
}
