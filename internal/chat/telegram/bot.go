// Package telegram adapts the chat engine to the Telegram Bot API. It owns
// the update loop, the admin gate, and keyboard rendering; all form logic
// lives in the engine.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shelfcore/internal/chat"
	"shelfcore/internal/observability"
)

// flowPrefix marks callback data that starts a flow from the menu.
const flowPrefix = "flow:"

// Logger is the minimal logging surface the bot needs.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Bot runs the admin bot over long polling.
type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *chat.Engine
	admins  map[int64]struct{}
	metrics *observability.Metrics
	log     Logger
	client  *http.Client
}

// New constructs the bot. adminIDs is the allow-list of Telegram user ids;
// everyone else is refused. metrics may be nil.
func New(token string, engine *chat.Engine, adminIDs []int64, metrics *observability.Metrics, log Logger) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram token required")
	}
	if len(adminIDs) == 0 {
		return nil, errors.New("at least one admin id required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Bot{
		api:     api,
		engine:  engine,
		admins:  admins,
		metrics: metrics,
		log:     log,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)
	b.log.Printf("bot %s polling for updates", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) count(outcome string) {
	if b.metrics != nil {
		b.metrics.BotUpdates.WithLabelValues(outcome).Inc()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	default:
		b.count(observability.OutcomeIgnored)
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]
	return ok
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// acknowledge immediately so the button stops spinning
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Printf("answer callback: %v", err)
	}
	if cb.Message == nil {
		b.count(observability.OutcomeIgnored)
		return
	}
	chatID := cb.Message.Chat.ID
	if !b.isAdmin(cb.From.ID) {
		b.send(chatID, "Access denied.")
		b.count(observability.OutcomeDenied)
		return
	}
	data := cb.Data
	if data == "noop" {
		b.count(observability.OutcomeIgnored)
		return
	}
	if flow, ok := strings.CutPrefix(data, flowPrefix); ok {
		reply, err := b.engine.Start(ctx, chatID, flow)
		b.deliver(chatID, reply, err)
		return
	}
	reply, err := b.engine.Handle(ctx, chatID, chat.Event{Text: data})
	if errors.Is(err, chat.ErrNoSession) {
		b.sendMenu(chatID)
		b.count(observability.OutcomeIgnored)
		return
	}
	b.deliver(chatID, reply, err)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.From == nil || !b.isAdmin(msg.From.ID) {
		b.send(chatID, "Access denied.")
		b.count(observability.OutcomeDenied)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "menu":
			b.sendMenu(chatID)
			b.count(observability.OutcomeOK)
		case "cancel":
			reply := b.engine.Cancel(chatID)
			b.deliver(chatID, reply, nil)
		default:
			b.send(chatID, "Unknown command. Use /menu.")
			b.count(observability.OutcomeIgnored)
		}
		return
	}

	ev := chat.Event{Text: msg.Text}
	if len(msg.Photo) > 0 {
		photo, err := b.downloadPhoto(msg.Photo)
		if err != nil {
			b.log.Printf("download photo: %v", err)
			b.send(chatID, "Could not download the photo, try again.")
			b.count(observability.OutcomeError)
			return
		}
		ev.Photo = photo
	}

	reply, err := b.engine.Handle(ctx, chatID, ev)
	if errors.Is(err, chat.ErrNoSession) {
		b.sendMenu(chatID)
		b.count(observability.OutcomeIgnored)
		return
	}
	b.deliver(chatID, reply, err)
}

// downloadPhoto fetches the largest size of a Telegram photo. Telegram
// re-encodes photos as JPEG.
func (b *Bot) downloadPhoto(sizes []tgbotapi.PhotoSize) (*chat.Photo, error) {
	best := sizes[len(sizes)-1]
	url, err := b.api.GetFileDirectURL(best.FileID)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &chat.Photo{Data: data, ContentType: "image/jpeg"}, nil
}

func (b *Bot) deliver(chatID int64, reply chat.Reply, err error) {
	if err != nil {
		b.log.Printf("chat %d: %v", chatID, err)
		b.send(chatID, "Something went wrong, try again.")
		b.count(observability.OutcomeError)
		return
	}
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if kb, ok := replyKeyboard(reply); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Printf("send to %d: %v", chatID, err)
		b.count(observability.OutcomeError)
		return
	}
	b.count(observability.OutcomeOK)
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Printf("send to %d: %v", chatID, err)
	}
}

func (b *Bot) sendMenu(chatID int64) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, section := range chat.MainMenu() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("· "+section.Title+" ·", "noop")))
		row := make([]tgbotapi.InlineKeyboardButton, 0, 3)
		for _, item := range section.Items {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(item.Label, flowPrefix+item.Flow))
			if len(row) == 3 {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
				row = make([]tgbotapi.InlineKeyboardButton, 0, 3)
			}
		}
		if len(row) > 0 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
		}
	}
	msg := tgbotapi.NewMessage(chatID, "What do you want to do?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Printf("send menu to %d: %v", chatID, err)
	}
}

// replyKeyboard renders the engine reply's options and controls as an inline
// keyboard.
func replyKeyboard(reply chat.Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if reply.Done {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	row := make([]tgbotapi.InlineKeyboardButton, 0, 3)
	for _, opt := range reply.Options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Value))
		if len(row) == 3 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = make([]tgbotapi.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	controls := make([]tgbotapi.InlineKeyboardButton, 0, 3)
	if reply.MultiDone {
		controls = append(controls, tgbotapi.NewInlineKeyboardButtonData("Done", chat.InputDone))
	}
	if reply.AllowSkip {
		controls = append(controls, tgbotapi.NewInlineKeyboardButtonData("Skip", chat.InputSkip))
	}
	controls = append(controls, tgbotapi.NewInlineKeyboardButtonData("Cancel", chat.InputCancel))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(controls...))
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
