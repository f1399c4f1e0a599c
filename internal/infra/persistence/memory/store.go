// Package memory provides the canonical in-memory implementation of the
// shelfcore persistence contract. Durable backends embed it and snapshot its
// state after every successful transaction.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"shelfcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

type memoryState struct {
	books        map[string]domain.Book
	vinyl        map[string]domain.VinylRecord
	coffeeBrands map[string]domain.CoffeeBrand
	coffees      map[string]domain.Coffee
	reviews      map[string]domain.CoffeeReview
	figures      map[string]domain.Figure
	plants       map[string]domain.Plant
	projects     map[string]domain.Project
	publications map[string]domain.Publication
	infographics map[string]domain.Infographic
	mediaLinks   map[string]domain.MediaLink
	siteConfig   map[string]domain.SiteConfig
	nextSeq      uint64
}

// Snapshot captures a point-in-time clone of the store state for external
// persistence.
type Snapshot struct {
	Books        map[string]domain.Book         `json:"books"`
	Vinyl        map[string]domain.VinylRecord  `json:"vinyl"`
	CoffeeBrands map[string]domain.CoffeeBrand  `json:"coffee_brands"`
	Coffees      map[string]domain.Coffee       `json:"coffees"`
	Reviews      map[string]domain.CoffeeReview `json:"coffee_reviews"`
	Figures      map[string]domain.Figure       `json:"figures"`
	Plants       map[string]domain.Plant        `json:"plants"`
	Projects     map[string]domain.Project      `json:"projects"`
	Publications map[string]domain.Publication  `json:"publications"`
	Infographics map[string]domain.Infographic  `json:"infographics"`
	MediaLinks   map[string]domain.MediaLink    `json:"media_links"`
	SiteConfig   map[string]domain.SiteConfig   `json:"site_config"`
}

func newMemoryState() memoryState {
	return memoryState{
		books:        make(map[string]domain.Book),
		vinyl:        make(map[string]domain.VinylRecord),
		coffeeBrands: make(map[string]domain.CoffeeBrand),
		coffees:      make(map[string]domain.Coffee),
		reviews:      make(map[string]domain.CoffeeReview),
		figures:      make(map[string]domain.Figure),
		plants:       make(map[string]domain.Plant),
		projects:     make(map[string]domain.Project),
		publications: make(map[string]domain.Publication),
		infographics: make(map[string]domain.Infographic),
		mediaLinks:   make(map[string]domain.MediaLink),
		siteConfig:   make(map[string]domain.SiteConfig),
		nextSeq:      1,
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	cloned.nextSeq = s.nextSeq
	for k, v := range s.books {
		cloned.books[k] = cloneBook(v)
	}
	for k, v := range s.vinyl {
		cloned.vinyl[k] = cloneVinyl(v)
	}
	for k, v := range s.coffeeBrands {
		cloned.coffeeBrands[k] = v
	}
	for k, v := range s.coffees {
		cloned.coffees[k] = v
	}
	for k, v := range s.reviews {
		cloned.reviews[k] = v
	}
	for k, v := range s.figures {
		cloned.figures[k] = v
	}
	for k, v := range s.plants {
		cloned.plants[k] = clonePlant(v)
	}
	for k, v := range s.projects {
		cloned.projects[k] = cloneProject(v)
	}
	for k, v := range s.publications {
		cloned.publications[k] = v
	}
	for k, v := range s.infographics {
		cloned.infographics[k] = v
	}
	for k, v := range s.mediaLinks {
		cloned.mediaLinks[k] = v
	}
	for k, v := range s.siteConfig {
		cloned.siteConfig[k] = v
	}
	return cloned
}

func cloneBook(b domain.Book) domain.Book {
	cp := b
	cp.Quotes = append([]domain.BookQuote(nil), b.Quotes...)
	return cp
}

func cloneVinyl(v domain.VinylRecord) domain.VinylRecord {
	cp := v
	cp.Genres = append([]string(nil), v.Genres...)
	return cp
}

func clonePlant(p domain.Plant) domain.Plant {
	cp := p
	cp.Photos = append([]domain.PlantPhoto(nil), p.Photos...)
	return cp
}

func cloneProject(p domain.Project) domain.Project {
	cp := p
	cp.Tags = append([]string(nil), p.Tags...)
	return cp
}

// Store provides an in-memory transactional store for the shelfcore domain.
type Store struct {
	mu    sync.RWMutex
	state memoryState
	nowFn func() time.Time
	idFn  func() string
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		state: newMemoryState(),
		nowFn: func() time.Time { return time.Now().UTC() },
		idFn:  uuid.NewString,
	}
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Books:        make(map[string]domain.Book, len(s.state.books)),
		Vinyl:        make(map[string]domain.VinylRecord, len(s.state.vinyl)),
		CoffeeBrands: make(map[string]domain.CoffeeBrand, len(s.state.coffeeBrands)),
		Coffees:      make(map[string]domain.Coffee, len(s.state.coffees)),
		Reviews:      make(map[string]domain.CoffeeReview, len(s.state.reviews)),
		Figures:      make(map[string]domain.Figure, len(s.state.figures)),
		Plants:       make(map[string]domain.Plant, len(s.state.plants)),
		Projects:     make(map[string]domain.Project, len(s.state.projects)),
		Publications: make(map[string]domain.Publication, len(s.state.publications)),
		Infographics: make(map[string]domain.Infographic, len(s.state.infographics)),
		MediaLinks:   make(map[string]domain.MediaLink, len(s.state.mediaLinks)),
		SiteConfig:   make(map[string]domain.SiteConfig, len(s.state.siteConfig)),
	}
	for k, v := range s.state.books {
		snap.Books[k] = cloneBook(v)
	}
	for k, v := range s.state.vinyl {
		snap.Vinyl[k] = cloneVinyl(v)
	}
	for k, v := range s.state.coffeeBrands {
		snap.CoffeeBrands[k] = v
	}
	for k, v := range s.state.coffees {
		snap.Coffees[k] = v
	}
	for k, v := range s.state.reviews {
		snap.Reviews[k] = v
	}
	for k, v := range s.state.figures {
		snap.Figures[k] = v
	}
	for k, v := range s.state.plants {
		snap.Plants[k] = clonePlant(v)
	}
	for k, v := range s.state.projects {
		snap.Projects[k] = cloneProject(v)
	}
	for k, v := range s.state.publications {
		snap.Publications[k] = v
	}
	for k, v := range s.state.infographics {
		snap.Infographics[k] = v
	}
	for k, v := range s.state.mediaLinks {
		snap.MediaLinks[k] = v
	}
	for k, v := range s.state.siteConfig {
		snap.SiteConfig[k] = v
	}
	return snap
}

// ImportState replaces the store state with the provided snapshot. The
// sequence counter resumes past the highest imported Seq.
func (s *Store) ImportState(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := newMemoryState()
	var maxSeq uint64
	track := func(seq uint64) {
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	for k, v := range snap.Books {
		state.books[k] = cloneBook(v)
		track(v.Seq)
	}
	for k, v := range snap.Vinyl {
		state.vinyl[k] = cloneVinyl(v)
		track(v.Seq)
	}
	for k, v := range snap.CoffeeBrands {
		state.coffeeBrands[k] = v
		track(v.Seq)
	}
	for k, v := range snap.Coffees {
		state.coffees[k] = v
		track(v.Seq)
	}
	for k, v := range snap.Reviews {
		state.reviews[k] = v
		track(v.Seq)
	}
	for k, v := range snap.Figures {
		state.figures[k] = v
		track(v.Seq)
	}
	for k, v := range snap.Plants {
		state.plants[k] = clonePlant(v)
		track(v.Seq)
	}
	for k, v := range snap.Projects {
		state.projects[k] = cloneProject(v)
		track(v.Seq)
	}
	for k, v := range snap.Publications {
		state.publications[k] = v
		track(v.Seq)
	}
	for k, v := range snap.Infographics {
		state.infographics[k] = v
		track(v.Seq)
	}
	for k, v := range snap.MediaLinks {
		state.mediaLinks[k] = v
		track(v.Seq)
	}
	for k, v := range snap.SiteConfig {
		state.siteConfig[k] = v
		track(v.Seq)
	}
	state.nextSeq = maxSeq + 1
	s.state = state
}

// transaction is a mutation set applied to a cloned copy of the store state
// and committed atomically on success.
type transaction struct {
	store *Store
	state memoryState
	now   time.Time
}

// RunInTransaction executes fn against a transactional copy of the store
// state and commits the copy when fn succeeds.
func (s *Store) RunInTransaction(_ context.Context, fn func(domain.Transaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// ViewState executes fn against a read-only snapshot of the store state.
func (s *Store) ViewState(_ context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state.clone()
	return fn(transactionView{state: &snapshot})
}

// Close releases nothing; the in-memory store holds no external resources.
func (s *Store) Close() error { return nil }

func (tx *transaction) View() domain.TransactionView {
	return transactionView{state: &tx.state}
}

func (tx *transaction) newBase() domain.Base {
	seq := tx.state.nextSeq
	tx.state.nextSeq++
	return domain.Base{
		ID:        tx.store.idFn(),
		Seq:       seq,
		CreatedAt: tx.now,
		UpdatedAt: tx.now,
	}
}

// sortedBySeq returns values ordered by their insertion sequence.
func sortedBySeq[T any](m map[string]T, seq func(T) uint64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return seq(out[i]) < seq(out[j]) })
	return out
}
