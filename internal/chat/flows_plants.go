package chat

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"shelfcore/pkg/domain"
)

// plantLabel prefers the common name, then the binomial, then the id.
func plantLabel(p domain.Plant) string {
	if p.CommonName != nil && *p.CommonName != "" {
		return *p.CommonName
	}
	if p.Genus != nil && p.Species != nil {
		return *p.Genus + " " + *p.Species
	}
	return p.ID
}

func (b *flowBuilder) plantOptions(ctx context.Context, _ *Session) ([]Option, error) {
	plants, err := b.catalog.ListPlants(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(plants))
	for _, p := range plants {
		opts = append(opts, Option{Label: plantLabel(p), Value: p.ID})
	}
	return opts, nil
}

func (b *flowBuilder) plantFlows() []*Flow {
	addFlow := &Flow{
		Name:  "plant_add",
		Intro: "Adding a plant. Every field can be skipped.",
		Steps: []Step{
			{Field: "common_name", Prompt: "Common name?", Kind: StepText},
			{Field: "family", Prompt: "Family?", Kind: StepText},
			{Field: "genus", Prompt: "Genus?", Kind: StepText},
			{Field: "species", Prompt: "Species?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			plant, err := b.catalog.CreatePlant(ctx, domain.Plant{
				CommonName: optStr(s, "common_name"),
				Family:     optStr(s, "family"),
				Genus:      optStr(s, "genus"),
				Species:    optStr(s, "species"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Plant %q added.", plantLabel(plant)), nil
		},
	}

	editFields := []editField{
		{Key: "common_name", Label: "Common name", Prompt: "New common name?", Nullable: true},
		{Key: "family", Label: "Family", Prompt: "New family?", Nullable: true},
		{Key: "genus", Label: "Genus", Prompt: "New genus?", Nullable: true},
		{Key: "species", Label: "Species", Prompt: "New species?", Nullable: true},
	}
	edit := editFlow("plant_edit", "Which plant?", b.plantOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.PlantPatch
			switch f.Key {
			case "common_name":
				patch.CommonName = strPatch(value)
			case "family":
				patch.Family = strPatch(value)
			case "genus":
				patch.Genus = strPatch(value)
			case "species":
				patch.Species = strPatch(value)
			}
			plant, err := b.catalog.UpdatePlant(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Plant %q updated.", plantLabel(plant)), nil
		})

	del := deleteFlow("plant_delete", "Which plant?", "Delete this plant?", "Plant deleted.",
		b.plantOptions, b.catalog.DeletePlant)

	photoAdd := &Flow{
		Name: "plant_photo_add",
		Steps: []Step{
			pickStep("Which plant?", b.plantOptions),
			{Field: "photo", Prompt: "Send the photo.", Kind: StepPhoto, Required: true},
			{Field: "date", Prompt: "Capture date (YYYY-MM-DD)? Skip for today.", Kind: StepText},
			{Field: "notes", Prompt: "Notes?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			date := s.Scratch["date"]
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			photo := s.Photos["photo"]
			plant, err := b.catalog.AddPlantPhoto(ctx, s.Scratch["id"],
				bytes.NewReader(photo.Data), photo.ContentType, date, optStr(s, "notes"))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Photo added to %q.", plantLabel(plant)), nil
		},
	}

	photoRemove := &Flow{
		Name: "plant_photo_remove",
		Steps: []Step{
			pickStep("Which plant?", b.plantOptions),
			{
				Field:    "index",
				Prompt:   "Which photo?",
				Kind:     StepChoice,
				Required: true,
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					plant, err := b.catalog.GetPlant(ctx, s.Scratch["id"])
					if err != nil {
						return nil, err
					}
					opts := make([]Option, 0, len(plant.Photos))
					for i, ph := range plant.Photos {
						opts = append(opts, Option{Label: ph.Date, Value: fmt.Sprintf("%d", i)})
					}
					return opts, nil
				},
			},
			confirmStep("Remove this photo?"),
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			index := optInt(s, "index")
			if index == nil {
				return "", fmt.Errorf("no photo selected")
			}
			if _, err := b.catalog.RemovePlantPhoto(ctx, s.Scratch["id"], *index); err != nil {
				return "", err
			}
			return "Photo removed.", nil
		},
	}

	return []*Flow{addFlow, edit, del, photoAdd, photoRemove}
}
