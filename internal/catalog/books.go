package catalog

import (
	"context"

	"shelfcore/pkg/domain"
)

// CreateBook stores a new book.
func (s *Service) CreateBook(ctx context.Context, b domain.Book) (domain.Book, error) {
	var out domain.Book
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateBook(b)
		return err
	})
	return out, err
}

// UpdateBook applies a patch to an existing book.
func (s *Service) UpdateBook(ctx context.Context, id string, patch domain.BookPatch) (domain.Book, error) {
	var out domain.Book
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateBook(id, patch)
		return err
	})
	return out, err
}

// DeleteBook removes a book.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteBook(id)
	})
}

// ListBooks returns all books in insertion order.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListBooks()
		return nil
	})
	return out, err
}

// GetBook resolves one book by id.
func (s *Service) GetBook(ctx context.Context, id string) (domain.Book, error) {
	var out domain.Book
	err := s.view(ctx, func(v domain.TransactionView) error {
		b, ok := v.FindBook(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityBook, ID: id}
		}
		out = b
		return nil
	})
	return out, err
}

// AddBookQuote appends one quote to a book.
func (s *Service) AddBookQuote(ctx context.Context, bookID string, quote domain.BookQuote) (domain.Book, error) {
	var out domain.Book
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		b, ok := tx.View().FindBook(bookID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityBook, ID: bookID}
		}
		quotes := append(append([]domain.BookQuote{}, b.Quotes...), quote)
		var err error
		out, err = tx.UpdateBook(bookID, domain.BookPatch{Quotes: domain.Set(quotes)})
		return err
	})
	return out, err
}

// RemoveBookQuote drops the quote at index.
func (s *Service) RemoveBookQuote(ctx context.Context, bookID string, index int) (domain.Book, error) {
	var out domain.Book
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		b, ok := tx.View().FindBook(bookID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityBook, ID: bookID}
		}
		if index < 0 || index >= len(b.Quotes) {
			return domain.ValidationError{Entity: domain.EntityBook, Field: "quotes", Reason: "quote index out of range"}
		}
		quotes := append([]domain.BookQuote{}, b.Quotes...)
		quotes = append(quotes[:index], quotes[index+1:]...)
		var err error
		out, err = tx.UpdateBook(bookID, domain.BookPatch{Quotes: domain.Set(quotes)})
		return err
	})
	return out, err
}
