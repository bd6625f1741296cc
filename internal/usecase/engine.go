package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minchenkova509/telegram-bot/configs"
	"github.com/minchenkova509/telegram-bot/internal/domain"
	"github.com/minchenkova509/telegram-bot/pkg/prometheus"
)

const (
	chatIDKey        = "chat_id"
	correlationIDKey = "correlation_id"
	stepKey          = "step"
	kindKey          = "kind"
	roleKey          = "role"
	errorKey         = "error"

	manualEntry = "Ввести вручную"
	noNumber    = "Без номера"

	msgAdminStart    = "👋 Привет, админ! Отправь фото заявки."
	msgEnterNumber   = "Введи номер заявки:"
	msgChooseDriver  = "Кому отправить заявку?"
	msgChooseName    = "Выбери свою фамилию:"
	msgChooseRequest = "Выбери номер заявки:"
	msgNoRequests    = "У тебя пока нет активных заявок. Введи номер заявки вручную."
	msgDocsReceived  = "✅ Документы получены. Спасибо!"
	msgUnknown       = "Неизвестная команда.\nНажми /start, чтобы начать заново"
)

// Engine runs the two conversational state machines. All session mutation
// happens inside SessionProvider.Update, so steps for one chat are applied
// strictly in arrival order; the request registry carries its own lock.
type Engine struct {
	sessions SessionProvider
	requests RequestProvider
	audit    AuditSink
	admins   []int64
	drivers  []string
	log      *slog.Logger
}

func NewEngine(sessions SessionProvider, requests RequestProvider, audit AuditSink,
	cfg *configs.Config, log *slog.Logger) *Engine {
	return &Engine{
		sessions: sessions,
		requests: requests,
		audit:    audit,
		admins:   cfg.Bot.Admins,
		drivers:  cfg.Bot.Drivers,
		log:      log,
	}
}

// Handle applies one inbound event to its chat's session and returns the
// outbound actions the transition produced. Errors concern the session
// storage only; invalid input never returns an error, it re-prompts.
func (e *Engine) Handle(ctx context.Context, ev domain.Event) ([]domain.Action, error) {
	const op = "usecase.Engine.Handle"

	role := e.Route(ev.From)

	var actions []domain.Action
	session, err := e.sessions.Update(ctx, ev.From, func(s *domain.Session) {
		switch role {
		case domain.RoleAdmin:
			actions = e.adminStep(ctx, s, ev)
		default:
			actions = e.driverStep(ctx, s, ev)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	e.log.Info("Событие обработано",
		chatIDKey, ev.From,
		kindKey, ev.Kind,
		roleKey, role,
		stepKey, session.Step,
		correlationIDKey, session.CorrelationID,
	)
	return actions, nil
}

func (e *Engine) isDriver(name string) bool {
	for _, d := range e.drivers {
		if d == name {
			return true
		}
	}
	return false
}

func (e *Engine) appendAudit(ctx context.Context, rec domain.AuditRecord) {
	if e.audit == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if err := e.audit.Append(ctx, rec); err != nil {
		prometheus.AuditFailures.Inc()
		e.log.Warn("Не удалось записать строку в журнал",
			"request_id", rec.RequestID, errorKey, err)
	}
}

// selectionValue extracts a candidate choice from a button press or a
// typed message; any other input kind is not a selection.
func selectionValue(ev domain.Event) string {
	if ev.Kind == domain.EventSelect || ev.Kind == domain.EventText {
		return strings.TrimSpace(ev.Value)
	}
	return ""
}

func text(chatID int64, msg string) domain.Action {
	return domain.Action{ChatID: chatID, Text: msg}
}

func prompt(chatID int64, msg string, options []string) domain.Action {
	return domain.Action{ChatID: chatID, Text: msg, Options: options}
}
