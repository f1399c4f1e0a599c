package catalog

import (
	"context"
	"sort"
	"strings"

	"shelfcore/pkg/domain"
)

// distinctSorted deduplicates non-empty trimmed values and sorts them.
func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// VinylGenres returns every genre used across the vinyl collection, sorted
// and deduplicated.
func (s *Service) VinylGenres(ctx context.Context) ([]string, error) {
	var out []string
	err := s.view(ctx, func(v domain.TransactionView) error {
		var all []string
		for _, rec := range v.ListVinylRecords() {
			all = append(all, rec.Genres...)
		}
		out = distinctSorted(all)
		return nil
	})
	return out, err
}

// BookGenres returns the distinct genres used across books.
func (s *Service) BookGenres(ctx context.Context) ([]string, error) {
	return s.distinctBookField(ctx, func(b domain.Book) *string { return b.Genre })
}

// BookLanguages returns the distinct languages used across books.
func (s *Service) BookLanguages(ctx context.Context) ([]string, error) {
	return s.distinctBookField(ctx, func(b domain.Book) *string { return b.Language })
}

// BookFormats returns the distinct formats used across books.
func (s *Service) BookFormats(ctx context.Context) ([]string, error) {
	return s.distinctBookField(ctx, func(b domain.Book) *string { return b.Format })
}

func (s *Service) distinctBookField(ctx context.Context, field func(domain.Book) *string) ([]string, error) {
	var out []string
	err := s.view(ctx, func(v domain.TransactionView) error {
		var all []string
		for _, b := range v.ListBooks() {
			if p := field(b); p != nil {
				all = append(all, *p)
			}
		}
		out = distinctSorted(all)
		return nil
	})
	return out, err
}

// SearchVinylRecords matches records whose artist or title contains the
// query, case-insensitively, in insertion order.
func (s *Service) SearchVinylRecords(ctx context.Context, query string) ([]domain.VinylRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.VinylRecord
	err := s.view(ctx, func(v domain.TransactionView) error {
		for _, rec := range v.ListVinylRecords() {
			if strings.Contains(strings.ToLower(rec.Artist), q) || strings.Contains(strings.ToLower(rec.Title), q) {
				out = append(out, rec)
			}
		}
		return nil
	})
	return out, err
}

// VinylRecordsByGenre returns records carrying the genre, case-insensitively.
func (s *Service) VinylRecordsByGenre(ctx context.Context, genre string) ([]domain.VinylRecord, error) {
	var out []domain.VinylRecord
	err := s.view(ctx, func(v domain.TransactionView) error {
		for _, rec := range v.ListVinylRecords() {
			for _, g := range rec.Genres {
				if strings.EqualFold(g, genre) {
					out = append(out, rec)
					break
				}
			}
		}
		return nil
	})
	return out, err
}

// SearchBooks matches books whose title or author contains the query,
// case-insensitively, in insertion order.
func (s *Service) SearchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.Book
	err := s.view(ctx, func(v domain.TransactionView) error {
		for _, b := range v.ListBooks() {
			author := ""
			if b.Author != nil {
				author = *b.Author
			}
			if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(author), q) {
				out = append(out, b)
			}
		}
		return nil
	})
	return out, err
}

// ReviewMethods returns the distinct brew methods used across coffee reviews.
func (s *Service) ReviewMethods(ctx context.Context) ([]string, error) {
	var out []string
	err := s.view(ctx, func(v domain.TransactionView) error {
		var all []string
		for _, r := range v.ListCoffeeReviews() {
			all = append(all, r.Method)
		}
		out = distinctSorted(all)
		return nil
	})
	return out, err
}
