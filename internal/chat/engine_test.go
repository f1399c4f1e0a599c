package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"shelfcore/internal/catalog"
	blobcore "shelfcore/internal/infra/blob/core"
	"shelfcore/internal/infra/persistence/memory"
	"shelfcore/pkg/domain"
)

const testChat int64 = 100500

func newTestEngine(t *testing.T) (*Engine, *catalog.Service) {
	t.Helper()
	cat := catalog.New(memory.NewStore(), nil, nil)
	return NewEngine(BuildFlows(cat, nil), nil), cat
}

// downStore fails every operation the way an unreachable database would.
type downStore struct{}

func (downStore) RunInTransaction(context.Context, func(domain.Transaction) error) error {
	return errors.New(`dial tcp 10.0.0.5:5432: connect: connection refused`)
}

func (downStore) ViewState(context.Context, func(domain.TransactionView) error) error {
	return errors.New(`dial tcp 10.0.0.5:5432: connect: connection refused`)
}

func (downStore) Close() error { return nil }

// downBlob rejects uploads the way an unreachable object store would.
type downBlob struct{}

func (downBlob) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", errors.New("dial tcp 192.168.4.2:9000: connect: connection refused")
}

func (downBlob) Delete(context.Context, string) (bool, error) { return false, nil }

func (downBlob) Driver() blobcore.Driver { return blobcore.DriverMemory }

func send(t *testing.T, e *Engine, text string) Reply {
	t.Helper()
	reply, err := e.Handle(context.Background(), testChat, Event{Text: text})
	if err != nil {
		t.Fatalf("handle %q: %v", text, err)
	}
	return reply
}

func TestAddBookSkippingOptionals(t *testing.T) {
	engine, cat := newTestEngine(t)

	reply, err := engine.Start(context.Background(), testChat, "book_add")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(reply.Text, "Title?") {
		t.Fatalf("first prompt = %q", reply.Text)
	}

	send(t, engine, "Dune")      // title
	send(t, engine, InputSkip)   // author
	send(t, engine, "Sci-Fi")    // genre, typed over suggestions
	send(t, engine, InputSkip)   // language
	send(t, engine, InputSkip)   // format
	send(t, engine, InputSkip)   // review
	reply = send(t, engine, InputSkip) // opinion, last step

	if !reply.Done || !strings.Contains(reply.Text, "added") {
		t.Fatalf("final reply = %+v", reply)
	}
	if engine.Active(testChat) {
		t.Fatalf("session should be closed")
	}

	books, err := cat.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d books", len(books))
	}
	book := books[0]
	if book.Title != "Dune" {
		t.Fatalf("title = %q", book.Title)
	}
	if book.Genre == nil || *book.Genre != "Sci-Fi" {
		t.Fatalf("genre = %v", book.Genre)
	}
	if book.Author != nil || book.Language != nil || book.Format != nil || book.Review != nil || book.Opinion != nil {
		t.Fatalf("skipped fields must stay null: %+v", book)
	}
}

func TestSkipOnRequiredFieldReprompts(t *testing.T) {
	engine, cat := newTestEngine(t)
	if _, err := engine.Start(context.Background(), testChat, "book_add"); err != nil {
		t.Fatalf("start: %v", err)
	}

	reply := send(t, engine, InputSkip)
	if reply.Done {
		t.Fatalf("flow must not end")
	}
	if !strings.Contains(reply.Text, "This field is required.") || !strings.Contains(reply.Text, "Title?") {
		t.Fatalf("reply = %q", reply.Text)
	}

	// empty input re-prompts too
	reply = send(t, engine, "   ")
	if reply.Done || !strings.Contains(reply.Text, "Title?") {
		t.Fatalf("reply = %+v", reply)
	}

	send(t, engine, "Dune")
	reply = send(t, engine, InputCancel)
	if !reply.Done {
		t.Fatalf("cancel must end the flow")
	}
	books, _ := cat.ListBooks(context.Background())
	if len(books) != 0 {
		t.Fatalf("cancelled flow must not commit")
	}
}

func TestCancelWithoutSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	reply := engine.Cancel(testChat)
	if !reply.Done || reply.Text != "Nothing to cancel." {
		t.Fatalf("reply = %+v", reply)
	}
	if _, err := engine.Handle(context.Background(), testChat, Event{Text: "hi"}); err != ErrNoSession {
		t.Fatalf("err = %v", err)
	}
}

func TestMultiSelectCollectsAndDeduplicates(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Start(ctx, testChat, "vinyl_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	send(t, engine, "Nirvana")
	send(t, engine, "Nevermind")
	send(t, engine, "1991")

	reply := send(t, engine, "Rock")
	if !reply.MultiDone || !strings.Contains(reply.Text, "Selected: Rock") {
		t.Fatalf("reply = %+v", reply)
	}
	reply = send(t, engine, "Rock") // repeat is a no-op
	if strings.Count(reply.Text, "Rock") != 1 {
		t.Fatalf("duplicate recorded: %q", reply.Text)
	}
	send(t, engine, "Grunge")
	send(t, engine, InputDone)
	reply = send(t, engine, InputSkip) // photo

	if !reply.Done {
		t.Fatalf("reply = %+v", reply)
	}
	records, err := cat.ListVinylRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	rec := records[0]
	if rec.Year == nil || *rec.Year != 1991 {
		t.Fatalf("year = %v", rec.Year)
	}
	if len(rec.Genres) != 2 || rec.Genres[0] != "Rock" || rec.Genres[1] != "Grunge" {
		t.Fatalf("genres = %v", rec.Genres)
	}
}

func TestYearValidationReprompts(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.Start(context.Background(), testChat, "vinyl_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	send(t, engine, "Nirvana")
	send(t, engine, "Nevermind")

	for _, bad := range []string{"1899", "2031", "soon"} {
		reply := send(t, engine, bad)
		if reply.Done || !strings.Contains(reply.Text, "Release year?") {
			t.Fatalf("%q accepted: %+v", bad, reply)
		}
	}
	reply := send(t, engine, "1991")
	if !strings.Contains(reply.Text, "Genres?") {
		t.Fatalf("valid year did not advance: %q", reply.Text)
	}
}

func TestConfirmNoAbortsDelete(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()

	book, err := cat.CreateBook(ctx, domain.Book{Title: "Dune"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := engine.Start(ctx, testChat, "book_delete"); err != nil {
		t.Fatalf("start: %v", err)
	}
	send(t, engine, book.ID)
	reply := send(t, engine, ConfirmNo)
	if !reply.Done || reply.Text != "Cancelled." {
		t.Fatalf("reply = %+v", reply)
	}
	books, _ := cat.ListBooks(ctx)
	if len(books) != 1 {
		t.Fatalf("book deleted despite refusal")
	}

	if _, err := engine.Start(ctx, testChat, "book_delete"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	send(t, engine, book.ID)
	reply = send(t, engine, "maybe")
	if !strings.Contains(reply.Text, "yes or no") {
		t.Fatalf("reply = %q", reply.Text)
	}
	send(t, engine, ConfirmYes)
	books, _ = cat.ListBooks(ctx)
	if len(books) != 0 {
		t.Fatalf("book not deleted after confirmation")
	}
}

func TestChoiceRejectsUnknownOption(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()
	if _, err := cat.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: "Sweet Beans"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := engine.Start(ctx, testChat, "coffee_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	reply := send(t, engine, "not-a-brand-id")
	if reply.Done || !strings.Contains(reply.Text, "Pick one of the offered options.") {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestStartReplacesActiveFlow(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Start(ctx, testChat, "book_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	send(t, engine, "Dune")

	reply, err := engine.Start(ctx, testChat, "brand_add")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !strings.Contains(reply.Text, "Brand name?") {
		t.Fatalf("reply = %q", reply.Text)
	}
}

func TestUnknownFlow(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.Start(context.Background(), testChat, "nope"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListFlowRendersImmediately(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()

	reply, err := engine.Start(ctx, testChat, "vinyl_list")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !reply.Done || reply.Text != "Nothing here yet." {
		t.Fatalf("reply = %+v", reply)
	}

	year := 1991
	if _, err := cat.CreateVinylRecord(ctx, domain.VinylRecord{
		Artist: "Nirvana", Title: "Nevermind", Year: &year, Genres: []string{"Rock"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	reply, err = engine.Start(ctx, testChat, "vinyl_list")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !reply.Done || !strings.Contains(reply.Text, "1. Nirvana - Nevermind (1991) [Rock]") {
		t.Fatalf("reply = %q", reply.Text)
	}
	if engine.Active(testChat) {
		t.Fatalf("list flow must not leave a session")
	}
}

func TestVinylSearchFlow(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()

	for _, rec := range []domain.VinylRecord{
		{Artist: "Nirvana", Title: "Nevermind"},
		{Artist: "Miles Davis", Title: "Kind of Blue"},
	} {
		if _, err := cat.CreateVinylRecord(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if _, err := engine.Start(ctx, testChat, "vinyl_search"); err != nil {
		t.Fatalf("start: %v", err)
	}
	reply := send(t, engine, "nirv")
	if !reply.Done || !strings.Contains(reply.Text, "Nevermind") || strings.Contains(reply.Text, "Miles") {
		t.Fatalf("reply = %q", reply.Text)
	}
}

func TestCommitFailureEndsFlowWithMessage(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()
	if _, err := cat.CreateCoffeeBrand(ctx, domain.CoffeeBrand{Name: "Sweet Beans"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := engine.Start(ctx, testChat, "brand_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	reply := send(t, engine, "Sweet Beans")
	if !reply.Done || !strings.HasPrefix(reply.Text, "Failed: ") {
		t.Fatalf("reply = %+v", reply)
	}
	if engine.Active(testChat) {
		t.Fatalf("session should be closed after commit failure")
	}
}

func TestStoreFailureGetsGenericNotice(t *testing.T) {
	cat := catalog.New(downStore{}, nil, nil)
	engine := NewEngine(BuildFlows(cat, nil), nil)
	ctx := context.Background()

	if _, err := engine.Start(ctx, testChat, "brand_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	reply := send(t, engine, "Sweet Beans")
	if !reply.Done || reply.Text != "Failed, try again." {
		t.Fatalf("reply = %+v", reply)
	}
	for _, leak := range []string{"connection refused", "10.0.0.5", "dial tcp"} {
		if strings.Contains(reply.Text, leak) {
			t.Fatalf("reply leaks backend detail: %q", reply.Text)
		}
	}
	if engine.Active(testChat) {
		t.Fatalf("session should be closed after commit failure")
	}
}

func TestVinylPhotoUploadFailureKeepsRecord(t *testing.T) {
	cat := catalog.New(memory.NewStore(), downBlob{}, nil)
	engine := NewEngine(BuildFlows(cat, nil), nil)
	ctx := context.Background()

	if _, err := engine.Start(ctx, testChat, "vinyl_add"); err != nil {
		t.Fatalf("start: %v", err)
	}
	send(t, engine, "Nirvana")
	send(t, engine, "Nevermind")
	send(t, engine, InputSkip) // year
	send(t, engine, InputDone) // genres
	reply, err := engine.Handle(ctx, testChat, Event{Photo: &Photo{Data: []byte("img"), ContentType: "image/jpeg"}})
	if err != nil {
		t.Fatalf("handle photo: %v", err)
	}

	if !reply.Done {
		t.Fatalf("reply = %+v", reply)
	}
	if strings.Contains(reply.Text, "Failed") {
		t.Fatalf("upload failure must not fail the flow: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "added") || !strings.Contains(reply.Text, "saved without photo") {
		t.Fatalf("reply = %q", reply.Text)
	}
	for _, leak := range []string{"connection refused", "192.168.4.2", "dial tcp"} {
		if strings.Contains(reply.Text, leak) {
			t.Fatalf("reply leaks backend detail: %q", reply.Text)
		}
	}

	records, err := cat.ListVinylRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Nevermind" {
		t.Fatalf("records = %+v", records)
	}
	if records[0].PhotoURL != nil {
		t.Fatalf("photo url should stay null after a failed upload")
	}
}

func TestPickerWithEmptyStoreEndsFlow(t *testing.T) {
	engine, cat := newTestEngine(t)
	ctx := context.Background()

	reply, err := engine.Start(ctx, testChat, "book_edit")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !reply.Done || !strings.Contains(reply.Text, "Nothing here yet.") {
		t.Fatalf("reply = %+v", reply)
	}
	if engine.Active(testChat) {
		t.Fatalf("session should not stay open with nothing to pick")
	}

	// a picker reached mid-flow ends the same way
	if _, err := cat.CreateBook(ctx, domain.Book{Title: "Dune"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	reply, err = engine.Start(ctx, testChat, "book_edit")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if reply.Done {
		t.Fatalf("picker with options must prompt: %+v", reply)
	}
}
