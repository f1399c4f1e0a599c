package chat

import (
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) figureOptions(ctx context.Context, _ *Session) ([]Option, error) {
	figures, err := b.catalog.ListFigures(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(figures))
	for _, f := range figures {
		opts = append(opts, Option{Label: f.Brand + " - " + f.Name, Value: f.ID})
	}
	return opts, nil
}

func (b *flowBuilder) figureFlows() []*Flow {
	addFlow := &Flow{
		Name:  "figure_add",
		Intro: "Adding a figure.",
		Steps: []Step{
			{Field: "name", Prompt: "Figure name?", Kind: StepText, Required: true},
			{Field: "brand", Prompt: "Manufacturer?", Kind: StepText, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			figure, err := b.catalog.CreateFigure(ctx, domain.Figure{
				Name:  reqStr(s, "name"),
				Brand: reqStr(s, "brand"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Figure %q added.", figure.Name), nil
		},
	}

	editFields := []editField{
		{Key: "name", Label: "Name", Prompt: "New name?"},
		{Key: "brand", Label: "Manufacturer", Prompt: "New manufacturer?"},
	}
	edit := editFlow("figure_edit", "Which figure?", b.figureOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.FigurePatch
			switch f.Key {
			case "name":
				patch.Name = domain.Set(value)
			case "brand":
				patch.Brand = domain.Set(value)
			}
			figure, err := b.catalog.UpdateFigure(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Figure %q updated.", figure.Name), nil
		})

	del := deleteFlow("figure_delete", "Which figure?", "Delete this figure?", "Figure deleted.",
		b.figureOptions, b.catalog.DeleteFigure)

	return []*Flow{addFlow, edit, del}
}

func (b *flowBuilder) projectOptions(ctx context.Context, _ *Session) ([]Option, error) {
	projects, err := b.catalog.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(projects))
	for _, p := range projects {
		opts = append(opts, Option{Label: p.Name, Value: p.ID})
	}
	return opts, nil
}

func (b *flowBuilder) projectFlows() []*Flow {
	addFlow := &Flow{
		Name:  "project_add",
		Intro: "Adding a project.",
		Steps: []Step{
			{Field: "name", Prompt: "Project name?", Kind: StepText, Required: true},
			{Field: "description", Prompt: "Description?", Kind: StepText, Required: true},
			{Field: "tags", Prompt: "Tags? Add as many as you like, then finish.", Kind: StepMulti},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			project, err := b.catalog.CreateProject(ctx, domain.Project{
				Name:        reqStr(s, "name"),
				Description: reqStr(s, "description"),
				Tags:        s.Multi["tags"],
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Project %q added.", project.Name), nil
		},
	}

	editFields := []editField{
		{Key: "name", Label: "Name", Prompt: "New name?"},
		{Key: "description", Label: "Description", Prompt: "New description?"},
		{Key: "tags", Label: "Tags", Prompt: "New tags?", List: true, Nullable: true},
	}
	edit := editFlow("project_edit", "Which project?", b.projectOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.ProjectPatch
			switch f.Key {
			case "name":
				patch.Name = domain.Set(value)
			case "description":
				patch.Description = domain.Set(value)
			case "tags":
				if value == clearValue {
					patch.Tags = domain.Null[[]string]()
				} else {
					patch.Tags = domain.Set(splitList(value))
				}
			}
			project, err := b.catalog.UpdateProject(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Project %q updated.", project.Name), nil
		})

	del := deleteFlow("project_delete", "Which project?", "Delete this project?", "Project deleted.",
		b.projectOptions, b.catalog.DeleteProject)

	return []*Flow{addFlow, edit, del}
}
