package chat

import (
	"context"
	"fmt"
	"strings"

	"shelfcore/pkg/domain"
)

const previewLen = 60

// truncate shortens a preview line.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// renderLines numbers the lines into one message.
func renderLines(header string, lines []string) string {
	if len(lines) == 0 {
		return "Nothing here yet."
	}
	var sb strings.Builder
	sb.WriteString(header)
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, truncate(line, previewLen)))
	}
	return sb.String()
}

// listFlow is a stepless flow: starting it renders the list right away.
func listFlow(name string, render func(ctx context.Context) (string, error)) *Flow {
	return &Flow{
		Name: name,
		Commit: func(ctx context.Context, _ *Session) (string, error) {
			return render(ctx)
		},
	}
}

func vinylLine(rec domain.VinylRecord) string {
	line := rec.Artist + " - " + rec.Title
	if rec.Year != nil {
		line += fmt.Sprintf(" (%d)", *rec.Year)
	}
	if len(rec.Genres) > 0 {
		line += " [" + strings.Join(rec.Genres, ", ") + "]"
	}
	return line
}

func bookLine(b domain.Book) string {
	line := b.Title
	if b.Author != nil {
		line += " - " + *b.Author
	}
	return line
}

func renderVinyl(header string, records []domain.VinylRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, vinylLine(rec))
	}
	return renderLines(header, lines)
}

func renderBooks(header string, books []domain.Book) string {
	lines := make([]string, 0, len(books))
	for _, b := range books {
		lines = append(lines, bookLine(b))
	}
	return renderLines(header, lines)
}

func (b *flowBuilder) browseFlows() []*Flow {
	bookList := listFlow("book_list", func(ctx context.Context) (string, error) {
		books, err := b.catalog.ListBooks(ctx)
		if err != nil {
			return "", err
		}
		return renderBooks("Books:", books), nil
	})

	bookSearch := &Flow{
		Name: "book_search",
		Steps: []Step{
			{Field: "query", Prompt: "Search books by title or author:", Kind: StepText, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			books, err := b.catalog.SearchBooks(ctx, reqStr(s, "query"))
			if err != nil {
				return "", err
			}
			return renderBooks("Found:", books), nil
		},
	}

	vinylList := listFlow("vinyl_list", func(ctx context.Context) (string, error) {
		records, err := b.catalog.ListVinylRecords(ctx)
		if err != nil {
			return "", err
		}
		return renderVinyl("Vinyl:", records), nil
	})

	vinylSearch := &Flow{
		Name: "vinyl_search",
		Steps: []Step{
			{Field: "query", Prompt: "Search records by artist or title:", Kind: StepText, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			records, err := b.catalog.SearchVinylRecords(ctx, reqStr(s, "query"))
			if err != nil {
				return "", err
			}
			return renderVinyl("Found:", records), nil
		},
	}

	vinylByGenre := &Flow{
		Name: "vinyl_by_genre",
		Steps: []Step{
			{Field: "genre", Prompt: "Which genre?", Kind: StepChoice, Required: true, FreeText: true, Options: b.vinylGenreOptions},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			genre := reqStr(s, "genre")
			records, err := b.catalog.VinylRecordsByGenre(ctx, genre)
			if err != nil {
				return "", err
			}
			return renderVinyl(genre+":", records), nil
		},
	}

	coffeeList := listFlow("coffee_list", func(ctx context.Context) (string, error) {
		brands, err := b.catalog.ListCoffeeBrands(ctx)
		if err != nil {
			return "", err
		}
		byID := make(map[string]string, len(brands))
		for _, brand := range brands {
			byID[brand.ID] = brand.Name
		}
		coffees, err := b.catalog.ListCoffeesWithReviews(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(coffees))
		for _, c := range coffees {
			line := c.Name
			if name := byID[c.BrandID]; name != "" {
				line = name + " " + line
			}
			if n := len(c.Reviews); n > 0 {
				line += fmt.Sprintf(" (%d reviews)", n)
			}
			lines = append(lines, line)
		}
		return renderLines("Coffee:", lines), nil
	})

	figureList := listFlow("figure_list", func(ctx context.Context) (string, error) {
		figures, err := b.catalog.ListFigures(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(figures))
		for _, f := range figures {
			lines = append(lines, f.Name+" ("+f.Brand+")")
		}
		return renderLines("Figures:", lines), nil
	})

	plantList := listFlow("plant_list", func(ctx context.Context) (string, error) {
		plants, err := b.catalog.ListPlants(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(plants))
		for _, p := range plants {
			line := plantLabel(p)
			if n := len(p.Photos); n > 0 {
				line += fmt.Sprintf(" (%d photos)", n)
			}
			lines = append(lines, line)
		}
		return renderLines("Plants:", lines), nil
	})

	projectList := listFlow("project_list", func(ctx context.Context) (string, error) {
		projects, err := b.catalog.ListProjects(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(projects))
		for _, p := range projects {
			lines = append(lines, p.Name+" - "+p.Description)
		}
		return renderLines("Projects:", lines), nil
	})

	publicationList := listFlow("publication_list", func(ctx context.Context) (string, error) {
		publications, err := b.catalog.ListPublications(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(publications))
		for _, p := range publications {
			line := p.Title
			if p.Year != nil {
				line += fmt.Sprintf(" (%d)", *p.Year)
			}
			lines = append(lines, line)
		}
		return renderLines("Publications:", lines), nil
	})

	infographicList := listFlow("infographic_list", func(ctx context.Context) (string, error) {
		infographics, err := b.catalog.ListInfographics(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(infographics))
		for _, i := range infographics {
			line := i.Title
			if i.Topic != nil {
				line += " [" + *i.Topic + "]"
			}
			lines = append(lines, line)
		}
		return renderLines("Infographics:", lines), nil
	})

	mediaLinkList := listFlow("media_link_list", func(ctx context.Context) (string, error) {
		links, err := b.catalog.ListMediaLinks(ctx)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(links))
		for _, m := range links {
			line := m.Type + ": " + m.Value
			if m.Label != nil {
				line = *m.Label + " (" + m.Type + "): " + m.Value
			}
			lines = append(lines, line)
		}
		return renderLines("Media links:", lines), nil
	})

	return []*Flow{
		bookList, bookSearch,
		vinylList, vinylSearch, vinylByGenre,
		coffeeList, figureList, plantList,
		projectList, publicationList, infographicList, mediaLinkList,
	}
}
