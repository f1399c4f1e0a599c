package catalog

import (
	"context"

	"shelfcore/pkg/domain"
)

// CoffeeWithReviews pairs a coffee with its reviews, loaded together so the
// aggregation endpoint never walks reviews per coffee.
type CoffeeWithReviews struct {
	domain.Coffee
	Reviews []domain.CoffeeReview
}

// CreateCoffeeBrand stores a new brand. Brand names are unique.
func (s *Service) CreateCoffeeBrand(ctx context.Context, b domain.CoffeeBrand) (domain.CoffeeBrand, error) {
	var out domain.CoffeeBrand
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateCoffeeBrand(b)
		return err
	})
	return out, err
}

// UpdateCoffeeBrand applies a patch to an existing brand.
func (s *Service) UpdateCoffeeBrand(ctx context.Context, id string, patch domain.CoffeeBrandPatch) (domain.CoffeeBrand, error) {
	var out domain.CoffeeBrand
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateCoffeeBrand(id, patch)
		return err
	})
	return out, err
}

// DeleteCoffeeBrand removes a brand. Fails while coffees still reference it.
func (s *Service) DeleteCoffeeBrand(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteCoffeeBrand(id)
	})
}

// ListCoffeeBrands returns all brands in insertion order.
func (s *Service) ListCoffeeBrands(ctx context.Context) ([]domain.CoffeeBrand, error) {
	var out []domain.CoffeeBrand
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListCoffeeBrands()
		return nil
	})
	return out, err
}

// GetCoffeeBrand resolves one brand by id.
func (s *Service) GetCoffeeBrand(ctx context.Context, id string) (domain.CoffeeBrand, error) {
	var out domain.CoffeeBrand
	err := s.view(ctx, func(v domain.TransactionView) error {
		b, ok := v.FindCoffeeBrand(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityCoffeeBrand, ID: id}
		}
		out = b
		return nil
	})
	return out, err
}

// CreateCoffee stores a new coffee under an existing brand.
func (s *Service) CreateCoffee(ctx context.Context, c domain.Coffee) (domain.Coffee, error) {
	var out domain.Coffee
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateCoffee(c)
		return err
	})
	return out, err
}

// UpdateCoffee applies a patch to an existing coffee. The brand reference is
// immutable.
func (s *Service) UpdateCoffee(ctx context.Context, id string, patch domain.CoffeePatch) (domain.Coffee, error) {
	var out domain.Coffee
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateCoffee(id, patch)
		return err
	})
	return out, err
}

// DeleteCoffee removes a coffee and cascades to its reviews.
func (s *Service) DeleteCoffee(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteCoffee(id)
	})
}

// ListCoffees returns all coffees in insertion order.
func (s *Service) ListCoffees(ctx context.Context) ([]domain.Coffee, error) {
	var out []domain.Coffee
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListCoffees()
		return nil
	})
	return out, err
}

// GetCoffee resolves one coffee by id.
func (s *Service) GetCoffee(ctx context.Context, id string) (domain.Coffee, error) {
	var out domain.Coffee
	err := s.view(ctx, func(v domain.TransactionView) error {
		c, ok := v.FindCoffee(id)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityCoffee, ID: id}
		}
		out = c
		return nil
	})
	return out, err
}

// ListCoffeesWithReviews returns every coffee with its reviews attached, both
// in insertion order, from one snapshot.
func (s *Service) ListCoffeesWithReviews(ctx context.Context) ([]CoffeeWithReviews, error) {
	var out []CoffeeWithReviews
	err := s.view(ctx, func(v domain.TransactionView) error {
		coffees := v.ListCoffees()
		byCoffee := make(map[string][]domain.CoffeeReview)
		for _, r := range v.ListCoffeeReviews() {
			byCoffee[r.CoffeeID] = append(byCoffee[r.CoffeeID], r)
		}
		out = make([]CoffeeWithReviews, 0, len(coffees))
		for _, c := range coffees {
			reviews := byCoffee[c.ID]
			if reviews == nil {
				reviews = []domain.CoffeeReview{}
			}
			out = append(out, CoffeeWithReviews{Coffee: c, Reviews: reviews})
		}
		return nil
	})
	return out, err
}

// CreateCoffeeReview stores a new review for an existing coffee.
func (s *Service) CreateCoffeeReview(ctx context.Context, r domain.CoffeeReview) (domain.CoffeeReview, error) {
	var out domain.CoffeeReview
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.CreateCoffeeReview(r)
		return err
	})
	return out, err
}

// UpdateCoffeeReview applies a patch to an existing review.
func (s *Service) UpdateCoffeeReview(ctx context.Context, id string, patch domain.CoffeeReviewPatch) (domain.CoffeeReview, error) {
	var out domain.CoffeeReview
	err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		out, err = tx.UpdateCoffeeReview(id, patch)
		return err
	})
	return out, err
}

// DeleteCoffeeReview removes a review.
func (s *Service) DeleteCoffeeReview(ctx context.Context, id string) error {
	return s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteCoffeeReview(id)
	})
}

// ListCoffeeReviewsFor returns the reviews of one coffee in insertion order.
func (s *Service) ListCoffeeReviewsFor(ctx context.Context, coffeeID string) ([]domain.CoffeeReview, error) {
	var out []domain.CoffeeReview
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListCoffeeReviewsFor(coffeeID)
		return nil
	})
	return out, err
}
