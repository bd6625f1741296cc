package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minchenkova509/telegram-bot/internal/domain"
	"github.com/minchenkova509/telegram-bot/pkg/prometheus"
)

// Админский сценарий: фото заявки → номер → выбор водителя.

func (e *Engine) adminStep(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	if ev.Kind == domain.EventCommand {
		return e.adminCommand(s, ev)
	}

	switch s.Step {
	case domain.StepAwaitingPhoto:
		if ev.Kind != domain.EventPhoto {
			return []domain.Action{text(ev.From, "Отправь фото заявки.")}
		}
		s.PhotoID = ev.Value
		s.Step = domain.StepAwaitingNumber
		return []domain.Action{text(ev.From, msgEnterNumber)}

	case domain.StepAwaitingNumber:
		number := strings.TrimSpace(ev.Value)
		if ev.Kind != domain.EventText || number == "" {
			return []domain.Action{text(ev.From, msgEnterNumber)}
		}
		s.RequestNumber = number
		s.Step = domain.StepAwaitingDriver
		return []domain.Action{prompt(ev.From, msgChooseDriver, e.drivers)}

	case domain.StepAwaitingDriver:
		return e.adminAssign(ctx, s, ev)
	}

	return e.adminStart(s, ev.From)
}

func (e *Engine) adminCommand(s *domain.Session, ev domain.Event) []domain.Action {
	switch ev.Value {
	case "start":
		return e.adminStart(s, ev.From)
	case "help":
		return []domain.Action{text(ev.From,
			"Бот рассылает заявки водителям и собирает документы.\n"+
				"Нажми /start и отправь фото заявки.")}
	default:
		return []domain.Action{text(ev.From, msgUnknown)}
	}
}

func (e *Engine) adminStart(s *domain.Session, chatID int64) []domain.Action {
	if s.Step == domain.StepIdle {
		prometheus.ActiveFlows.Inc()
	}
	s.Reset()
	s.Step = domain.StepAwaitingPhoto
	return []domain.Action{text(chatID, msgAdminStart)}
}

func (e *Engine) adminAssign(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	driver := selectionValue(ev)
	if !e.isDriver(driver) {
		return []domain.Action{prompt(ev.From, msgChooseDriver, e.drivers)}
	}

	err := e.requests.Assign(ctx, domain.Request{
		ID:      s.RequestNumber,
		Driver:  driver,
		PhotoID: s.PhotoID,
	})
	if errors.Is(err, domain.ErrDuplicateRequest) {
		e.log.Info("Повторный номер заявки",
			chatIDKey, ev.From,
			"request_id", s.RequestNumber,
			correlationIDKey, s.CorrelationID,
		)
		return []domain.Action{
			text(ev.From, fmt.Sprintf("⚠️ Заявка №%s уже в работе. Выбери водителя заново или начни с /start.", s.RequestNumber)),
			prompt(ev.From, msgChooseDriver, e.drivers),
		}
	}
	if err != nil {
		e.log.Error("Ошибка сохранения заявки",
			chatIDKey, ev.From,
			correlationIDKey, s.CorrelationID,
			errorKey, err,
		)
		return []domain.Action{prompt(ev.From, msgChooseDriver, e.drivers)}
	}

	prometheus.RequestsAssigned.Inc()
	e.appendAudit(ctx, domain.AuditRecord{
		RequestID: s.RequestNumber,
		Driver:    driver,
		PhotoID:   s.PhotoID,
		Origin:    domain.RoleAdmin,
	})

	confirmation := text(ev.From,
		fmt.Sprintf("✅ Заявка №%s отправлена водителю %s", s.RequestNumber, driver))

	prometheus.ActiveFlows.Dec()
	s.Reset()
	return []domain.Action{confirmation}
}
