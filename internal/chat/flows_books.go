package chat

import (
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) bookOptions(ctx context.Context, _ *Session) ([]Option, error) {
	books, err := b.catalog.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(books))
	for _, bk := range books {
		opts = append(opts, Option{Label: bk.Title, Value: bk.ID})
	}
	return opts, nil
}

func (b *flowBuilder) bookGenreOptions(ctx context.Context, _ *Session) ([]Option, error) {
	genres, err := b.catalog.BookGenres(ctx)
	if err != nil {
		return nil, err
	}
	return suggest(genres, popularBookGenres), nil
}

func (b *flowBuilder) bookLanguageOptions(ctx context.Context, _ *Session) ([]Option, error) {
	languages, err := b.catalog.BookLanguages(ctx)
	if err != nil {
		return nil, err
	}
	return suggest(languages, popularLanguages), nil
}

func (b *flowBuilder) bookFormatOptions(ctx context.Context, _ *Session) ([]Option, error) {
	formats, err := b.catalog.BookFormats(ctx)
	if err != nil {
		return nil, err
	}
	return suggest(formats, popularFormats), nil
}

func (b *flowBuilder) bookFlows() []*Flow {
	addFlow := &Flow{
		Name:  "book_add",
		Intro: "Adding a book.",
		Steps: []Step{
			{Field: "title", Prompt: "Title?", Kind: StepText, Required: true},
			{Field: "author", Prompt: "Author?", Kind: StepText},
			{Field: "genre", Prompt: "Genre?", Kind: StepChoice, FreeText: true, Options: b.bookGenreOptions},
			{Field: "language", Prompt: "Language?", Kind: StepChoice, FreeText: true, Options: b.bookLanguageOptions},
			{Field: "format", Prompt: "Format?", Kind: StepChoice, FreeText: true, Options: b.bookFormatOptions},
			{Field: "review", Prompt: "Short public review?", Kind: StepText},
			{Field: "opinion", Prompt: "Private opinion?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			book, err := b.catalog.CreateBook(ctx, domain.Book{
				Title:    reqStr(s, "title"),
				Author:   optStr(s, "author"),
				Genre:    optStr(s, "genre"),
				Language: optStr(s, "language"),
				Format:   optStr(s, "format"),
				Review:   optStr(s, "review"),
				Opinion:  optStr(s, "opinion"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Book %q added.", book.Title), nil
		},
	}

	editFields := []editField{
		{Key: "title", Label: "Title", Prompt: "New title?"},
		{Key: "author", Label: "Author", Prompt: "New author?", Nullable: true},
		{Key: "genre", Label: "Genre", Prompt: "New genre?", Options: b.bookGenreOptions, Nullable: true},
		{Key: "language", Label: "Language", Prompt: "New language?", Options: b.bookLanguageOptions, Nullable: true},
		{Key: "format", Label: "Format", Prompt: "New format?", Options: b.bookFormatOptions, Nullable: true},
		{Key: "review", Label: "Review", Prompt: "New review?", Nullable: true},
		{Key: "opinion", Label: "Opinion", Prompt: "New opinion?", Nullable: true},
	}
	edit := editFlow("book_edit", "Which book?", b.bookOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.BookPatch
			switch f.Key {
			case "title":
				patch.Title = domain.Set(value)
			case "author":
				patch.Author = strPatch(value)
			case "genre":
				patch.Genre = strPatch(value)
			case "language":
				patch.Language = strPatch(value)
			case "format":
				patch.Format = strPatch(value)
			case "review":
				patch.Review = strPatch(value)
			case "opinion":
				patch.Opinion = strPatch(value)
			}
			book, err := b.catalog.UpdateBook(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Book %q updated.", book.Title), nil
		})

	del := deleteFlow("book_delete", "Which book?", "Delete this book?", "Book deleted.",
		b.bookOptions, b.catalog.DeleteBook)

	quoteAdd := &Flow{
		Name: "book_quote_add",
		Steps: []Step{
			pickStep("Which book?", b.bookOptions),
			{Field: "text", Prompt: "Quote text?", Kind: StepText, Required: true},
			{Field: "page", Prompt: "Page number?", Kind: StepText, Validate: intValidator},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			book, err := b.catalog.AddBookQuote(ctx, s.Scratch["id"], domain.BookQuote{
				Text: reqStr(s, "text"),
				Page: optInt(s, "page"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Quote added to %q.", book.Title), nil
		},
	}

	quoteRemove := &Flow{
		Name: "book_quote_remove",
		Steps: []Step{
			pickStep("Which book?", b.bookOptions),
			{
				Field:    "index",
				Prompt:   "Which quote?",
				Kind:     StepChoice,
				Required: true,
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					book, err := b.catalog.GetBook(ctx, s.Scratch["id"])
					if err != nil {
						return nil, err
					}
					opts := make([]Option, 0, len(book.Quotes))
					for i, q := range book.Quotes {
						label := q.Text
						if len(label) > 40 {
							label = label[:40] + "…"
						}
						opts = append(opts, Option{Label: label, Value: fmt.Sprintf("%d", i)})
					}
					return opts, nil
				},
			},
			confirmStep("Remove this quote?"),
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			index := optInt(s, "index")
			if index == nil {
				return "", fmt.Errorf("no quote selected")
			}
			if _, err := b.catalog.RemoveBookQuote(ctx, s.Scratch["id"], *index); err != nil {
				return "", err
			}
			return "Quote removed.", nil
		},
	}

	return []*Flow{addFlow, edit, del, quoteAdd, quoteRemove}
}
