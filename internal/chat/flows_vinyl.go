package chat

import (
	"bytes"
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) vinylOptions(ctx context.Context, _ *Session) ([]Option, error) {
	records, err := b.catalog.ListVinylRecords(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(records))
	for _, r := range records {
		opts = append(opts, Option{Label: r.Artist + " - " + r.Title, Value: r.ID})
	}
	return opts, nil
}

func (b *flowBuilder) vinylGenreOptions(ctx context.Context, _ *Session) ([]Option, error) {
	genres, err := b.catalog.VinylGenres(ctx)
	if err != nil {
		return nil, err
	}
	return suggest(genres, popularVinylGenres), nil
}

func (b *flowBuilder) vinylFlows() []*Flow {
	addFlow := &Flow{
		Name:  "vinyl_add",
		Intro: "Adding a vinyl record.",
		Steps: []Step{
			{Field: "artist", Prompt: "Artist?", Kind: StepText, Required: true},
			{Field: "title", Prompt: "Album title?", Kind: StepText, Required: true},
			{Field: "year", Prompt: "Release year?", Kind: StepText, Validate: yearValidator},
			{Field: "genres", Prompt: "Genres? Pick as many as apply, then finish.", Kind: StepMulti, Options: b.vinylGenreOptions},
			{Field: "photo", Prompt: "Cover photo?", Kind: StepPhoto},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			rec, err := b.catalog.CreateVinylRecord(ctx, domain.VinylRecord{
				Artist: reqStr(s, "artist"),
				Title:  reqStr(s, "title"),
				Year:   optInt(s, "year"),
				Genres: s.Multi["genres"],
			})
			if err != nil {
				return "", err
			}
			if photo, ok := s.Photos["photo"]; ok {
				// upload failure is not fatal, the record stands without a photo
				if _, err := b.catalog.SetVinylPhoto(ctx, rec.ID, bytes.NewReader(photo.Data), photo.ContentType); err != nil {
					b.log.Printf("vinyl %s photo upload: %v", rec.ID, err)
					return fmt.Sprintf("Vinyl %s - %s added (photo upload failed, saved without photo).", rec.Artist, rec.Title), nil
				}
			}
			return fmt.Sprintf("Vinyl %s - %s added.", rec.Artist, rec.Title), nil
		},
	}

	editFields := []editField{
		{Key: "artist", Label: "Artist", Prompt: "New artist?"},
		{Key: "title", Label: "Title", Prompt: "New title?"},
		{Key: "year", Label: "Year", Prompt: "New release year?", Validate: yearValidator, Nullable: true},
		{Key: "genres", Label: "Genres", Prompt: "New genres?", Options: b.vinylGenreOptions, Nullable: true, List: true},
	}
	edit := editFlow("vinyl_edit", "Which record?", b.vinylOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.VinylRecordPatch
			switch f.Key {
			case "artist":
				patch.Artist = domain.Set(value)
			case "title":
				patch.Title = domain.Set(value)
			case "year":
				patch.Year = intPatch(value)
			case "genres":
				if value == clearValue {
					patch.Genres = domain.Null[[]string]()
				} else {
					patch.Genres = domain.Set(splitList(value))
				}
			}
			rec, err := b.catalog.UpdateVinylRecord(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Vinyl %s - %s updated.", rec.Artist, rec.Title), nil
		})

	del := deleteFlow("vinyl_delete", "Which record?", "Delete this record?", "Record deleted.",
		b.vinylOptions, b.catalog.DeleteVinylRecord)

	photoSet := &Flow{
		Name: "vinyl_photo",
		Steps: []Step{
			pickStep("Which record?", b.vinylOptions),
			{Field: "photo", Prompt: "Send the cover photo.", Kind: StepPhoto, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			photo := s.Photos["photo"]
			rec, err := b.catalog.SetVinylPhoto(ctx, s.Scratch["id"], bytes.NewReader(photo.Data), photo.ContentType)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Cover photo set for %s - %s.", rec.Artist, rec.Title), nil
		},
	}

	photoRemove := &Flow{
		Name: "vinyl_photo_remove",
		Steps: []Step{
			pickStep("Which record?", b.vinylOptions),
			confirmStep("Remove the cover photo?"),
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			rec, err := b.catalog.RemoveVinylPhoto(ctx, s.Scratch["id"])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Cover photo removed from %s - %s.", rec.Artist, rec.Title), nil
		},
	}

	return []*Flow{addFlow, edit, del, photoSet, photoRemove}
}
