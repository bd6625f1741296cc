package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/minchenkova509/telegram-bot/internal/domain"
	"github.com/minchenkova509/telegram-bot/pkg/prometheus"
)

const (
	chatIDKey  = "chat_id"
	kindKey    = "kind"
	errorKey   = "error"
	successKey = "success"
	errorVal   = "error"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ev, ok := toEvent(update)
	if !ok {
		return
	}

	startTime := time.Now()
	defer func() {
		prometheus.UpdateDuration.WithLabelValues(string(ev.Kind)).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.UpdateCounter.WithLabelValues(string(ev.Kind), status).Inc()
	}()

	if update.CallbackQuery != nil {
		if err := b.AnswerCallbackQuery(update.CallbackQuery.ID, ""); err != nil {
			b.log.Debug("Ошибка ответа на callback", chatIDKey, ev.From, errorKey, err)
		}
	}

	actions, err := b.workflow.Handle(ctx, ev)
	if err != nil {
		status = errorVal
		b.log.Error("Ошибка обработки события",
			chatIDKey, ev.From, kindKey, ev.Kind, errorKey, err)
		b.SendMessage(ev.From, "Произошла ошибка. Нажми /start и попробуй ещё раз.")
		return
	}
	b.execute(ctx, ev, actions)
}

// toEvent flattens a Telegram update into the workflow's event shape.
func toEvent(update tgbotapi.Update) (domain.Event, bool) {
	if update.CallbackQuery != nil {
		msg := update.CallbackQuery.Message
		if msg == nil {
			return domain.Event{}, false
		}
		return domain.Event{
			From:     msg.Chat.ID,
			FromName: update.CallbackQuery.From.UserName,
			Kind:     domain.EventSelect,
			Value:    update.CallbackQuery.Data,
		}, true
	}

	msg := update.Message
	if msg == nil {
		return domain.Event{}, false
	}
	ev := domain.Event{From: msg.Chat.ID}
	if msg.From != nil {
		ev.FromName = msg.From.UserName
	}

	switch {
	case msg.IsCommand():
		ev.Kind = domain.EventCommand
		ev.Value = msg.Command()
	case len(msg.Photo) > 0:
		ev.Kind = domain.EventPhoto
		ev.Value = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Document != nil:
		ev.Kind = domain.EventDocument
		ev.Value = msg.Document.FileID
	default:
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return domain.Event{}, false
		}
		ev.Kind = domain.EventText
		ev.Value = text
	}
	return ev, true
}

// execute delivers the workflow's outbound actions. Delivery failure after
// a committed transition is a warning to the triggering chat, never a
// rollback.
func (b *Bot) execute(ctx context.Context, ev domain.Event, actions []domain.Action) {
	for _, action := range actions {
		if action.ToAdmins {
			if err := b.fanout(ctx, action); err != nil {
				prometheus.APIFailures.WithLabelValues("fanout").Inc()
				b.log.Warn("Ошибка рассылки админам", chatIDKey, ev.From, errorKey, err)
				b.SendMessage(ev.From, "⚠️ Не получилось переслать документы админу. Попробуй отправить ещё раз позже.")
			}
			continue
		}
		if err := b.send(action.ChatID, action); err != nil {
			prometheus.APIFailures.WithLabelValues("send").Inc()
			b.log.Warn("Ошибка отправки сообщения", chatIDKey, action.ChatID, errorKey, err)
		}
	}
}

// fanout sends one copy of the action to every admin.
func (b *Bot) fanout(ctx context.Context, action domain.Action) error {
	g, _ := errgroup.WithContext(ctx)
	for _, adminID := range b.admins {
		g.Go(func() error {
			return b.send(adminID, action)
		})
	}
	return g.Wait()
}

func (b *Bot) send(chatID int64, action domain.Action) error {
	switch {
	case action.PhotoID != "":
		msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(action.PhotoID))
		msg.Caption = action.Caption
		if _, err := b.Send(msg); err != nil {
			return err
		}
		prometheus.MessagesSent.WithLabelValues("photo").Inc()

	case action.DocumentID != "":
		msg := tgbotapi.NewDocument(chatID, tgbotapi.FileID(action.DocumentID))
		msg.Caption = action.Caption
		if _, err := b.Send(msg); err != nil {
			return err
		}
		prometheus.MessagesSent.WithLabelValues("document").Inc()

	default:
		msg := tgbotapi.NewMessage(chatID, truncate(action.Text))
		if len(action.Options) > 0 {
			msg.ReplyMarkup = optionsKeyboard(action.Options)
		}
		if _, err := b.Send(msg); err != nil {
			return err
		}
		prometheus.MessagesSent.WithLabelValues("text").Inc()
	}
	return nil
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	_, err := b.Send(msg)
	if err != nil {
		b.log.Warn("Ошибка отправки сообщения", chatIDKey, chatID, errorKey, err)
	}
	return err
}

func truncate(text string) string {
	if len(text) > 4000 {
		return text[:4000] + "..."
	}
	return text
}

// optionsKeyboard renders choices as one inline button per row, callback
// data equal to the visible label.
func optionsKeyboard(options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, option := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, option),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
