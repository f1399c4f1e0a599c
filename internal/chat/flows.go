package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shelfcore/internal/catalog"
	"shelfcore/pkg/domain"
)

// clearValue is the sentinel a user picks in an edit flow to null a field.
const clearValue = "/clear"

// Fallback option lists shown when the store has no values to suggest yet.
var (
	popularVinylGenres = []string{
		"Rock", "Pop", "Jazz", "Classical",
		"Electronic", "Hip-Hop", "Blues", "Folk",
		"Metal", "Punk", "Reggae", "Country",
	}
	popularBookGenres = []string{
		"Fiction", "Fantasy", "Mystery", "Novel",
		"Classics", "Biography", "History", "Philosophy",
		"Psychology", "Business", "Popular Science", "Poetry",
	}
	popularLanguages = []string{
		"Russian", "English", "Spanish", "French",
		"German", "Italian", "Chinese", "Japanese",
	}
	popularFormats = []string{
		"Paperback", "Ebook", "Audiobook",
		"PDF", "EPUB", "FB2", "MOBI",
	}
	brewMethods = []string{
		"espresso", "cappuccino", "latte", "americano",
		"cezve", "filter", "pourover", "french press",
	}
	mediaLinkTypes = []string{
		"github", "telegram", "email", "linkedin", "twitter", "website",
	}
)

// flowBuilder wires flows to the catalog service.
type flowBuilder struct {
	catalog *catalog.Service
	log     Logger
}

// BuildFlows assembles every admin flow over the catalog. A nil logger
// disables logging.
func BuildFlows(c *catalog.Service, log Logger) map[string]*Flow {
	if log == nil {
		log = nopLogger{}
	}
	b := &flowBuilder{catalog: c, log: log}
	flows := map[string]*Flow{}
	add := func(fs ...*Flow) {
		for _, f := range fs {
			flows[f.Name] = f
		}
	}
	add(b.bookFlows()...)
	add(b.vinylFlows()...)
	add(b.coffeeFlows()...)
	add(b.figureFlows()...)
	add(b.plantFlows()...)
	add(b.projectFlows()...)
	add(b.publicationFlows()...)
	add(b.infographicFlows()...)
	add(b.mediaFlows()...)
	add(b.browseFlows()...)
	return flows
}

// --- answer extraction ---

func reqStr(s *Session, field string) string {
	return s.Scratch[field]
}

func optStr(s *Session, field string) *string {
	v, ok := s.Scratch[field]
	if !ok {
		return nil
	}
	return &v
}

func optInt(s *Session, field string) *int {
	v, ok := s.Scratch[field]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func optFloat(s *Session, field string) *float64 {
	v, ok := s.Scratch[field]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// --- validators ---

func yearValidator(ctx context.Context, s *Session, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("Enter a year as a number.")
	}
	if n < domain.MinYear || n > domain.MaxYear {
		return fmt.Errorf("Year must be between %d and %d.", domain.MinYear, domain.MaxYear)
	}
	return nil
}

func ratingValidator(ctx context.Context, s *Session, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("Enter a rating as a number.")
	}
	if f < domain.MinRating || f > domain.MaxRating {
		return fmt.Errorf("Rating must be between %d and %d.", domain.MinRating, domain.MaxRating)
	}
	return nil
}

func intValidator(ctx context.Context, s *Session, value string) error {
	if _, err := strconv.Atoi(value); err != nil {
		return fmt.Errorf("Enter a number.")
	}
	return nil
}

// --- option helpers ---

// suggest builds a suggestion list from stored values, falling back to a
// popular list when the store has none yet. Typed answers stay allowed.
func suggest(values []string, fallback []string) []Option {
	if len(values) == 0 {
		values = fallback
	}
	if len(values) > 12 {
		values = values[:12]
	}
	return Opts(values...)
}

// pickStep builds the required record-picker step every edit and delete flow
// starts with.
func pickStep(prompt string, options func(ctx context.Context, s *Session) ([]Option, error)) Step {
	return Step{
		Field:    "id",
		Prompt:   prompt,
		Kind:     StepChoice,
		Required: true,
		Options:  options,
	}
}

func confirmStep(prompt string) Step {
	return Step{Field: "confirm", Prompt: prompt, Kind: StepConfirm, Required: true}
}

// --- generic edit flow ---

// editField describes one editable field of an entity.
type editField struct {
	Key      string
	Label    string
	Prompt   string
	Options  func(ctx context.Context, s *Session) ([]Option, error)
	Validate func(ctx context.Context, s *Session, value string) error
	// Nullable fields offer a clear control that nulls them.
	Nullable bool
	// List fields take comma-separated input.
	List bool
}

// editFlow builds the pick-field-value flow shared by every entity: choose a
// record, choose a field, enter the new value, commit.
func editFlow(name, pickPrompt string, pick func(ctx context.Context, s *Session) ([]Option, error), fields []editField, commit func(ctx context.Context, s *Session, field editField, value string) (string, error)) *Flow {
	byKey := map[string]editField{}
	fieldOpts := make([]Option, 0, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
		fieldOpts = append(fieldOpts, Option{Label: f.Label, Value: f.Key})
	}
	current := func(s *Session) (editField, bool) {
		f, ok := byKey[s.Scratch["field"]]
		return f, ok
	}
	return &Flow{
		Name: name,
		Steps: []Step{
			pickStep(pickPrompt, pick),
			{
				Field:    "field",
				Prompt:   "Which field do you want to change?",
				Kind:     StepChoice,
				Required: true,
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					return fieldOpts, nil
				},
			},
			{
				Field:    "value",
				Kind:     StepChoice,
				Required: true,
				FreeText: true,
				PromptFunc: func(ctx context.Context, s *Session) string {
					f, ok := current(s)
					if !ok {
						return "Enter the new value."
					}
					prompt := f.Prompt
					if f.List {
						prompt += " Separate multiple values with commas."
					}
					return prompt
				},
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					f, ok := current(s)
					if !ok {
						return nil, nil
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
				},
				Validate: func(ctx context.Context, s *Session, value string) error {
					f, ok := current(s)
					if !ok || value == clearValue || f.Validate == nil {
						return nil
					}
					return f.Validate(ctx, s, value)
				},
			},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			f, ok := current(s)
			if !ok {
				return "", fmt.Errorf("unknown field %q", s.Scratch["field"])
			}
			return commit(ctx, s, f, s.Scratch["value"])
		},
	}
}

// deleteFlow builds the pick-confirm flow shared by every entity.
func deleteFlow(name, pickPrompt, confirmPrompt, doneText string, pick func(ctx context.Context, s *Session) ([]Option, error), del func(ctx context.Context, id string) error) *Flow {
	return &Flow{
		Name: name,
		Steps: []Step{
			pickStep(pickPrompt, pick),
			confirmStep(confirmPrompt),
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			if err := del(ctx, s.Scratch["id"]); err != nil {
				return "", err
			}
			return doneText, nil
		},
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// strPatch maps an edit answer onto a nullable string patch field.
func strPatch(value string) domain.Optional[string] {
	if value == clearValue {
		return domain.Null[string]()
	}
	return domain.Set(value)
}

func intPatch(value string) domain.Optional[int] {
	if value == clearValue {
		return domain.Null[int]()
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return domain.Optional[int]{}
	}
	return domain.Set(n)
}

func floatPatch(value string) domain.Optional[float64] {
	if value == clearValue {
		return domain.Null[float64]()
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return domain.Optional[float64]{}
	}
	return domain.Set(f)
}
