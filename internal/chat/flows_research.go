package chat

import (
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) publicationOptions(ctx context.Context, _ *Session) ([]Option, error) {
	publications, err := b.catalog.ListPublications(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(publications))
	for _, p := range publications {
		opts = append(opts, Option{Label: p.Title, Value: p.ID})
	}
	return opts, nil
}

func (b *flowBuilder) publicationFlows() []*Flow {
	addFlow := &Flow{
		Name:  "publication_add",
		Intro: "Adding a publication.",
		Steps: []Step{
			{Field: "title", Prompt: "Title?", Kind: StepText, Required: true},
			{Field: "venue", Prompt: "Venue?", Kind: StepText},
			{Field: "year", Prompt: "Year?", Kind: StepText, Validate: yearValidator},
			{Field: "url", Prompt: "URL?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			pub, err := b.catalog.CreatePublication(ctx, domain.Publication{
				Title: reqStr(s, "title"),
				Venue: optStr(s, "venue"),
				Year:  optInt(s, "year"),
				URL:   optStr(s, "url"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Publication %q added.", pub.Title), nil
		},
	}

	editFields := []editField{
		{Key: "title", Label: "Title", Prompt: "New title?"},
		{Key: "venue", Label: "Venue", Prompt: "New venue?", Nullable: true},
		{Key: "year", Label: "Year", Prompt: "New year?", Validate: yearValidator, Nullable: true},
		{Key: "url", Label: "URL", Prompt: "New URL?", Nullable: true},
	}
	edit := editFlow("publication_edit", "Which publication?", b.publicationOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.PublicationPatch
			switch f.Key {
			case "title":
				patch.Title = domain.Set(value)
			case "venue":
				patch.Venue = strPatch(value)
			case "year":
				patch.Year = intPatch(value)
			case "url":
				patch.URL = strPatch(value)
			}
			pub, err := b.catalog.UpdatePublication(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Publication %q updated.", pub.Title), nil
		})

	del := deleteFlow("publication_delete", "Which publication?", "Delete this publication?",
		"Publication deleted.", b.publicationOptions, b.catalog.DeletePublication)

	return []*Flow{addFlow, edit, del}
}

func (b *flowBuilder) infographicOptions(ctx context.Context, _ *Session) ([]Option, error) {
	infographics, err := b.catalog.ListInfographics(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(infographics))
	for _, i := range infographics {
		opts = append(opts, Option{Label: i.Title, Value: i.ID})
	}
	return opts, nil
}

func (b *flowBuilder) infographicFlows() []*Flow {
	addFlow := &Flow{
		Name:  "infographic_add",
		Intro: "Adding an infographic.",
		Steps: []Step{
			{Field: "title", Prompt: "Title?", Kind: StepText, Required: true},
			{Field: "topic", Prompt: "Topic?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			info, err := b.catalog.CreateInfographic(ctx, domain.Infographic{
				Title: reqStr(s, "title"),
				Topic: optStr(s, "topic"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Infographic %q added.", info.Title), nil
		},
	}

	editFields := []editField{
		{Key: "title", Label: "Title", Prompt: "New title?"},
		{Key: "topic", Label: "Topic", Prompt: "New topic?", Nullable: true},
	}
	edit := editFlow("infographic_edit", "Which infographic?", b.infographicOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.InfographicPatch
			switch f.Key {
			case "title":
				patch.Title = domain.Set(value)
			case "topic":
				patch.Topic = strPatch(value)
			}
			info, err := b.catalog.UpdateInfographic(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Infographic %q updated.", info.Title), nil
		})

	del := deleteFlow("infographic_delete", "Which infographic?", "Delete this infographic?",
		"Infographic deleted.", b.infographicOptions, b.catalog.DeleteInfographic)

	return []*Flow{addFlow, edit, del}
}
