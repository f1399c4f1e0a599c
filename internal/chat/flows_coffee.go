package chat

import (
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) brandOptions(ctx context.Context, _ *Session) ([]Option, error) {
	brands, err := b.catalog.ListCoffeeBrands(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(brands))
	for _, br := range brands {
		opts = append(opts, Option{Label: br.Name, Value: br.ID})
	}
	return opts, nil
}

func (b *flowBuilder) coffeeOptions(ctx context.Context, _ *Session) ([]Option, error) {
	coffees, err := b.catalog.ListCoffees(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := b.catalog.ListCoffeeBrands(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(brands))
	for _, br := range brands {
		names[br.ID] = br.Name
	}
	opts := make([]Option, 0, len(coffees))
	for _, c := range coffees {
		label := c.Name
		if brand := names[c.BrandID]; brand != "" {
			label = brand + " - " + c.Name
		}
		opts = append(opts, Option{Label: label, Value: c.ID})
	}
	return opts, nil
}

func (b *flowBuilder) reviewOptions(ctx context.Context, s *Session) ([]Option, error) {
	reviews, err := b.catalog.ListCoffeeReviewsFor(ctx, s.Scratch["coffee"])
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(reviews))
	for _, r := range reviews {
		label := r.Method
		if r.Rating != nil {
			label = fmt.Sprintf("%s (%.1f)", r.Method, *r.Rating)
		}
		opts = append(opts, Option{Label: label, Value: r.ID})
	}
	return opts, nil
}

func (b *flowBuilder) methodOptions(ctx context.Context, _ *Session) ([]Option, error) {
	methods, err := b.catalog.ReviewMethods(ctx)
	if err != nil {
		return nil, err
	}
	return suggest(methods, brewMethods), nil
}

func (b *flowBuilder) coffeeFlows() []*Flow {
	brandAdd := &Flow{
		Name:  "brand_add",
		Intro: "Adding a coffee brand.",
		Steps: []Step{
			{Field: "name", Prompt: "Brand name?", Kind: StepText, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			brand, err := b.catalog.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: reqStr(s, "name")})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Brand %q added.", brand.Name), nil
		},
	}

	brandEdit := editFlow("brand_edit", "Which brand?", b.brandOptions,
		[]editField{{Key: "name", Label: "Name", Prompt: "New name?"}},
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			brand, err := b.catalog.UpdateCoffeeBrand(ctx, s.Scratch["id"], domain.CoffeeBrandPatch{Name: domain.Set(value)})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Brand %q updated.", brand.Name), nil
		})

	brandDelete := deleteFlow("brand_delete", "Which brand?",
		"Delete this brand? Brands still referenced by coffees cannot be deleted.",
		"Brand deleted.", b.brandOptions, b.catalog.DeleteCoffeeBrand)

	coffeeAdd := &Flow{
		Name:  "coffee_add",
		Intro: "Adding a coffee.",
		Steps: []Step{
			{Field: "brand", Prompt: "Which brand?", Kind: StepChoice, Required: true, Options: b.brandOptions},
			{Field: "name", Prompt: "Coffee name?", Kind: StepText, Required: true},
			{Field: "region", Prompt: "Region?", Kind: StepText},
			{Field: "processing", Prompt: "Processing method?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			coffee, err := b.catalog.CreateCoffee(ctx, domain.Coffee{
				BrandID:    reqStr(s, "brand"),
				Name:       reqStr(s, "name"),
				Region:     optStr(s, "region"),
				Processing: optStr(s, "processing"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Coffee %q added.", coffee.Name), nil
		},
	}

	coffeeEditFields := []editField{
		{Key: "name", Label: "Name", Prompt: "New name?"},
		{Key: "region", Label: "Region", Prompt: "New region?", Nullable: true},
		{Key: "processing", Label: "Processing", Prompt: "New processing method?", Nullable: true},
	}
	coffeeEdit := editFlow("coffee_edit", "Which coffee?", b.coffeeOptions, coffeeEditFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.CoffeePatch
			switch f.Key {
			case "name":
				patch.Name = domain.Set(value)
			case "region":
				patch.Region = strPatch(value)
			case "processing":
				patch.Processing = strPatch(value)
			}
			coffee, err := b.catalog.UpdateCoffee(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Coffee %q updated.", coffee.Name), nil
		})

	coffeeDelete := deleteFlow("coffee_delete", "Which coffee?",
		"Delete this coffee? Its reviews are deleted with it.",
		"Coffee deleted.", b.coffeeOptions, b.catalog.DeleteCoffee)

	reviewAdd := &Flow{
		Name:  "review_add",
		Intro: "Adding a coffee review.",
		Steps: []Step{
			{Field: "coffee", Prompt: "Which coffee?", Kind: StepChoice, Required: true, Options: b.coffeeOptions},
			{Field: "method", Prompt: "Brew method?", Kind: StepChoice, Required: true, FreeText: true, Options: b.methodOptions},
			{Field: "rating", Prompt: "Rating (0-10)?", Kind: StepText, Validate: ratingValidator},
			{Field: "notes", Prompt: "Tasting notes?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			review, err := b.catalog.CreateCoffeeReview(ctx, domain.CoffeeReview{
				CoffeeID: reqStr(s, "coffee"),
				Method:   reqStr(s, "method"),
				Rating:   optFloat(s, "rating"),
				Notes:    optStr(s, "notes"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Review (%s) added.", review.Method), nil
		},
	}

	reviewEditFields := []editField{
		{Key: "method", Label: "Method", Prompt: "New brew method?", Options: b.methodOptions},
		{Key: "rating", Label: "Rating", Prompt: "New rating (0-10)?", Validate: ratingValidator, Nullable: true},
		{Key: "notes", Label: "Notes", Prompt: "New tasting notes?", Nullable: true},
	}
	reviewEdit := &Flow{
		Name: "review_edit",
		Steps: []Step{
			{Field: "coffee", Prompt: "Which coffee?", Kind: StepChoice, Required: true, Options: b.coffeeOptions},
			pickStep("Which review?", b.reviewOptions),
			{
				Field:    "field",
				Prompt:   "Which field do you want to change?",
				Kind:     StepChoice,
				Required: true,
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					opts := make([]Option, 0, len(reviewEditFields))
					for _, f := range reviewEditFields {
						opts = append(opts, Option{Label: f.Label, Value: f.Key})
					}
					return opts, nil
				},
			},
			{
				Field:    "value",
				Kind:     StepChoice,
				Required: true,
				FreeText: true,
				PromptFunc: func(ctx context.Context, s *Session) string {
					for _, f := range reviewEditFields {
						if f.Key == s.Scratch["field"] {
							return f.Prompt
						}
					}
					return "Enter the new value."
				},
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					for _, f := range reviewEditFields {
						if f.Key != s.Scratch["field"] {
							continue
						}
						var opts []Option
						if f.Options != nil {
							var err error
							opts, err = f.Options(ctx, s)
							if err != nil {
								return nil, err
							}
						}
						if f.Nullable {
							opts = append(opts, Option{Label: "Clear", Value: clearValue})
						}
						return opts, nil
					}
					return nil, nil
				},
				Validate: func(ctx context.Context, s *Session, value string) error {
					if value == clearValue {
						return nil
					}
					for _, f := range reviewEditFields {
						if f.Key == s.Scratch["field"] && f.Validate != nil {
							return f.Validate(ctx, s, value)
						}
					}
					return nil
				},
			},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			var patch domain.CoffeeReviewPatch
			value := s.Scratch["value"]
			switch s.Scratch["field"] {
			case "method":
				patch.Method = domain.Set(value)
			case "rating":
				patch.Rating = floatPatch(value)
			case "notes":
				patch.Notes = strPatch(value)
			default:
				return "", fmt.Errorf("unknown field %q", s.Scratch["field"])
			}
			review, err := b.catalog.UpdateCoffeeReview(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Review (%s) updated.", review.Method), nil
		},
	}

	reviewDelete := &Flow{
		Name: "review_delete",
		Steps: []Step{
			{Field: "coffee", Prompt: "Which coffee?", Kind: StepChoice, Required: true, Options: b.coffeeOptions},
			pickStep("Which review?", b.reviewOptions),
			confirmStep("Delete this review?"),
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			if err := b.catalog.DeleteCoffeeReview(ctx, s.Scratch["id"]); err != nil {
				return "", err
			}
			return "Review deleted.", nil
		},
	}

	return []*Flow{brandAdd, brandEdit, brandDelete, coffeeAdd, coffeeEdit, coffeeDelete, reviewAdd, reviewEdit, reviewDelete}
}
