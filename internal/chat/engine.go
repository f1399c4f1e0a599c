package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shelfcore/pkg/domain"
)

// StepKind selects how a step consumes input.
type StepKind int

const (
	// StepText accepts a free-text answer.
	StepText StepKind = iota
	// StepChoice accepts one of the offered options or, when FreeText is
	// set, any typed answer.
	StepChoice
	// StepMulti collects a set of options until the user finishes.
	StepMulti
	// StepPhoto accepts an uploaded image.
	StepPhoto
	// StepConfirm asks a yes/no question; answering no cancels the flow.
	StepConfirm
)

// Control inputs recognized at any state.
const (
	InputCancel = "/cancel"
	InputSkip   = "/skip"
	InputDone   = "/done"
	ConfirmYes  = "yes"
	ConfirmNo   = "no"
)

// Option is one selectable answer. Value is what gets stored; Label is what
// the transport shows.
type Option struct {
	Label string
	Value string
}

// Opts builds options where label and value coincide.
func Opts(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

// Step is one state of a flow.
type Step struct {
	// Field keys the answer in the session.
	Field string
	// Prompt is the question text. PromptFunc overrides it when dynamic.
	Prompt     string
	PromptFunc func(ctx context.Context, s *Session) string
	Kind       StepKind
	// Required steps re-prompt on empty or skipped input.
	Required bool
	// FreeText lets a choice step accept typed answers besides the options.
	FreeText bool
	// Options supplies the selectable answers, possibly derived from
	// session state.
	Options func(ctx context.Context, s *Session) ([]Option, error)
	// Validate rejects an answer with a user-facing error message.
	Validate func(ctx context.Context, s *Session, value string) error
}

// Flow is an ordered step list ending in a commit.
type Flow struct {
	Name string
	// Intro precedes the first prompt, if set.
	Intro string
	Steps []Step
	// Commit persists the collected answers and returns the confirmation
	// text shown to the user.
	Commit func(ctx context.Context, s *Session) (string, error)
}

// Event is one user input delivered by the transport. Choice selections
// arrive as Text carrying the option value.
type Event struct {
	Text  string
	Photo *Photo
}

// Reply tells the transport what to render next.
type Reply struct {
	Text      string
	Options   []Option
	AllowSkip bool
	// MultiDone marks a multi-select prompt that needs a finish control.
	MultiDone bool
	// Done marks the end of the flow (committed or cancelled).
	Done bool
}

// ErrNoSession is returned when input arrives outside any active flow.
var ErrNoSession = errors.New("chat: no active flow")

// Logger is the minimal logging surface the engine needs.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Engine drives flows over per-chat sessions.
type Engine struct {
	flows    map[string]*Flow
	sessions *sessions
	log      Logger
}

// NewEngine constructs an engine over the given flows. A nil logger disables
// logging.
func NewEngine(flows map[string]*Flow, log Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{flows: flows, sessions: newSessions(), log: log}
}

// Flows lists the registered flow names.
func (e *Engine) Flows() []string {
	out := make([]string, 0, len(e.flows))
	for name := range e.flows {
		out = append(out, name)
	}
	return out
}

// Active reports whether the chat has a flow in progress.
func (e *Engine) Active(chatID int64) bool {
	_, ok := e.sessions.get(chatID)
	return ok
}

// Start begins a flow for the chat, replacing any flow in progress, and
// returns the first prompt.
func (e *Engine) Start(ctx context.Context, chatID int64, flowName string) (Reply, error) {
	unlock := e.sessions.lock(chatID)
	defer unlock()

	flow, ok := e.flows[flowName]
	if !ok {
		return Reply{}, fmt.Errorf("unknown flow %q", flowName)
	}
	sess := newSession(chatID, flowName)
	// stepless flows render immediately, nothing to ask
	if len(flow.Steps) == 0 {
		e.sessions.drop(chatID)
		return e.commit(ctx, flow, sess), nil
	}
	e.sessions.put(sess)
	reply, err := e.prompt(ctx, flow, sess)
	if err != nil {
		e.sessions.drop(chatID)
		return Reply{}, err
	}
	if flow.Intro != "" {
		reply.Text = flow.Intro + "\n\n" + reply.Text
	}
	return reply, nil
}

// Cancel aborts the chat's flow, if any.
func (e *Engine) Cancel(chatID int64) Reply {
	unlock := e.sessions.lock(chatID)
	defer unlock()
	if _, ok := e.sessions.get(chatID); !ok {
		return Reply{Text: "Nothing to cancel.", Done: true}
	}
	e.sessions.drop(chatID)
	return Reply{Text: "Cancelled.", Done: true}
}

// Handle feeds one input event into the chat's active flow.
func (e *Engine) Handle(ctx context.Context, chatID int64, ev Event) (Reply, error) {
	unlock := e.sessions.lock(chatID)
	defer unlock()

	sess, ok := e.sessions.get(chatID)
	if !ok {
		return Reply{}, ErrNoSession
	}
	flow := e.flows[sess.Flow]
	text := strings.TrimSpace(ev.Text)

	// cancel interrupts any state
	if strings.EqualFold(text, InputCancel) {
		e.sessions.drop(chatID)
		return Reply{Text: "Cancelled.", Done: true}, nil
	}

	step := flow.Steps[sess.StepIndex]

	if strings.EqualFold(text, InputSkip) {
		if step.Required {
			return e.repromptWith(ctx, flow, sess, "This field is required.")
		}
		return e.advance(ctx, flow, sess)
	}

	switch step.Kind {
	case StepPhoto:
		if ev.Photo == nil {
			return e.repromptWith(ctx, flow, sess, "Please send a photo.")
		}
		sess.Photos[step.Field] = *ev.Photo
		return e.advance(ctx, flow, sess)

	case StepMulti:
		if strings.EqualFold(text, InputDone) {
			if step.Required && len(sess.Multi[step.Field]) == 0 {
				return e.repromptWith(ctx, flow, sess, "Pick at least one value first.")
			}
			return e.advance(ctx, flow, sess)
		}
		if text == "" {
			return e.repromptWith(ctx, flow, sess, "")
		}
		if err := e.validate(ctx, step, sess, text); err != nil {
			return e.repromptWith(ctx, flow, sess, err.Error())
		}
		// idempotent add
		for _, v := range sess.Multi[step.Field] {
			if v == text {
				return e.prompt(ctx, flow, sess)
			}
		}
		sess.Multi[step.Field] = append(sess.Multi[step.Field], text)
		return e.prompt(ctx, flow, sess)

	case StepConfirm:
		switch strings.ToLower(text) {
		case ConfirmYes:
			sess.Scratch[step.Field] = ConfirmYes
			return e.advance(ctx, flow, sess)
		case ConfirmNo:
			e.sessions.drop(chatID)
			return Reply{Text: "Cancelled.", Done: true}, nil
		default:
			return e.repromptWith(ctx, flow, sess, "Please answer yes or no.")
		}

	case StepChoice:
		if text == "" {
			return e.repromptWith(ctx, flow, sess, "")
		}
		if !step.FreeText {
			options, err := e.options(ctx, step, sess)
			if err != nil {
				return Reply{}, err
			}
			if !optionValue(options, text) {
				return e.repromptWith(ctx, flow, sess, "Pick one of the offered options.")
			}
		}
		if err := e.validate(ctx, step, sess, text); err != nil {
			return e.repromptWith(ctx, flow, sess, err.Error())
		}
		sess.Scratch[step.Field] = text
		return e.advance(ctx, flow, sess)

	default: // StepText
		if text == "" {
			return e.repromptWith(ctx, flow, sess, "")
		}
		if err := e.validate(ctx, step, sess, text); err != nil {
			return e.repromptWith(ctx, flow, sess, err.Error())
		}
		sess.Scratch[step.Field] = text
		return e.advance(ctx, flow, sess)
	}
}

func (e *Engine) validate(ctx context.Context, step Step, sess *Session, value string) error {
	if step.Validate == nil {
		return nil
	}
	return step.Validate(ctx, sess, value)
}

func (e *Engine) options(ctx context.Context, step Step, sess *Session) ([]Option, error) {
	if step.Options == nil {
		return nil, nil
	}
	return step.Options(ctx, sess)
}

// advance moves past the current step, committing when it was the last one.
func (e *Engine) advance(ctx context.Context, flow *Flow, sess *Session) (Reply, error) {
	sess.StepIndex++
	if sess.StepIndex < len(flow.Steps) {
		return e.prompt(ctx, flow, sess)
	}
	e.sessions.drop(sess.ChatID)
	return e.commit(ctx, flow, sess), nil
}

// commit runs the flow's terminal action. Domain-level failures carry a
// message the user can act on; anything else (store drivers, object storage)
// stays in the server log and the user gets a generic notice.
func (e *Engine) commit(ctx context.Context, flow *Flow, sess *Session) Reply {
	text, err := flow.Commit(ctx, sess)
	if err != nil {
		e.log.Printf("flow %s commit: %v", flow.Name, err)
		return Reply{Text: failureText(err), Done: true}
	}
	return Reply{Text: text, Done: true}
}

func failureText(err error) string {
	if domain.IsValidation(err) || domain.IsConflict(err) || domain.IsNotFound(err) {
		return "Failed: " + err.Error()
	}
	return "Failed, try again."
}

// prompt renders the current step.
func (e *Engine) prompt(ctx context.Context, flow *Flow, sess *Session) (Reply, error) {
	step := flow.Steps[sess.StepIndex]
	text := step.Prompt
	if step.PromptFunc != nil {
		text = step.PromptFunc(ctx, sess)
	}
	options, err := e.options(ctx, step, sess)
	if err != nil {
		return Reply{}, err
	}
	// a required picker with nothing to pick can never complete
	if step.Kind == StepChoice && step.Required && !step.FreeText && len(options) == 0 {
		e.sessions.drop(sess.ChatID)
		return Reply{Text: "Nothing here yet.", Done: true}, nil
	}
	if step.Kind == StepConfirm {
		options = []Option{{Label: "Yes", Value: ConfirmYes}, {Label: "No", Value: ConfirmNo}}
	}
	if step.Kind == StepMulti && len(sess.Multi[step.Field]) > 0 {
		text += "\nSelected: " + strings.Join(sess.Multi[step.Field], ", ")
	}
	return Reply{
		Text:      text,
		Options:   options,
		AllowSkip: !step.Required && step.Kind != StepConfirm,
		MultiDone: step.Kind == StepMulti,
	}, nil
}

func (e *Engine) repromptWith(ctx context.Context, flow *Flow, sess *Session, note string) (Reply, error) {
	reply, err := e.prompt(ctx, flow, sess)
	if err != nil {
		return Reply{}, err
	}
	if note != "" {
		reply.Text = note + "\n" + reply.Text
	}
	return reply, nil
}

func optionValue(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
