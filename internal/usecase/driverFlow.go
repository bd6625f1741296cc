package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/minchenkova509/telegram-bot/internal/domain"
	"github.com/minchenkova509/telegram-bot/pkg/prometheus"
)

// Водительский сценарий: фамилия → номер заявки → фото документов.

func (e *Engine) driverStep(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	if ev.Kind == domain.EventCommand {
		return e.driverCommand(s, ev)
	}

	switch s.Step {
	case domain.StepAwaitingIdentity:
		return e.driverIdentity(ctx, s, ev)
	case domain.StepAwaitingRequest:
		return e.driverRequest(ctx, s, ev)
	case domain.StepAwaitingDocs:
		return e.driverDocs(ctx, s, ev)
	}

	return e.driverStart(s, ev.From)
}

func (e *Engine) driverCommand(s *domain.Session, ev domain.Event) []domain.Action {
	switch ev.Value {
	case "start":
		return e.driverStart(s, ev.From)
	case "help":
		return []domain.Action{text(ev.From,
			"Бот выдаёт твои заявки и принимает фото документов.\n"+
				"Нажми /start и выбери свою фамилию.")}
	default:
		return []domain.Action{text(ev.From, msgUnknown)}
	}
}

func (e *Engine) driverStart(s *domain.Session, chatID int64) []domain.Action {
	if s.Step == domain.StepIdle {
		prometheus.ActiveFlows.Inc()
	}
	s.Reset()
	s.Step = domain.StepAwaitingIdentity
	return []domain.Action{prompt(chatID, msgChooseName, e.drivers)}
}

func (e *Engine) driverIdentity(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	driver := selectionValue(ev)
	if !e.isDriver(driver) {
		return []domain.Action{prompt(ev.From, msgChooseName, e.drivers)}
	}
	s.Driver = driver

	active := e.requests.ListFor(ctx, driver)
	if len(active) == 0 {
		s.Step = domain.StepAwaitingDocs
		return []domain.Action{text(ev.From, msgNoRequests)}
	}

	s.Step = domain.StepAwaitingRequest
	return []domain.Action{prompt(ev.From, msgChooseRequest, e.requestOptions(active))}
}

func (e *Engine) requestOptions(active []domain.Request) []string {
	options := make([]string, 0, len(active)+1)
	for _, req := range active {
		options = append(options, req.ID)
	}
	return append(options, manualEntry)
}

func (e *Engine) driverRequest(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	selected := selectionValue(ev)
	if selected == "" {
		active := e.requests.ListFor(ctx, s.Driver)
		return []domain.Action{prompt(ev.From, msgChooseRequest, e.requestOptions(active))}
	}
	if selected == manualEntry {
		return []domain.Action{text(ev.From, msgEnterNumber)}
	}

	// Номер, которого нет в списке, принимается как введённый вручную:
	// заявка могла быть заведена мимо бота.
	if _, err := e.requests.Find(ctx, s.Driver, selected); err != nil {
		e.log.Info("Номер заявки введён вручную",
			chatIDKey, ev.From,
			"request_id", selected,
			correlationIDKey, s.CorrelationID,
		)
	}
	s.RequestID = selected
	s.Step = domain.StepAwaitingDocs
	return []domain.Action{text(ev.From, fmt.Sprintf("Отправь фото документов по заявке %s", selected))}
}

func (e *Engine) driverDocs(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	switch ev.Kind {
	case domain.EventPhoto, domain.EventDocument:
		return e.driverForward(ctx, s, ev)

	case domain.EventText, domain.EventSelect:
		number := strings.TrimSpace(ev.Value)
		if s.RequestID == "" && number != "" && number != manualEntry {
			s.RequestID = number
			return []domain.Action{text(ev.From, fmt.Sprintf("Отправь фото документов по заявке %s", number))}
		}
	}

	if s.RequestID == "" {
		return []domain.Action{text(ev.From, msgEnterNumber)}
	}
	return []domain.Action{text(ev.From, fmt.Sprintf("Отправь фото документов по заявке %s", s.RequestID))}
}

func (e *Engine) driverForward(ctx context.Context, s *domain.Session, ev domain.Event) []domain.Action {
	requestID := s.RequestID
	if requestID == "" {
		requestID = noNumber
	}

	caption := fmt.Sprintf("📄 Документы по заявке %s\nВодитель: %s", requestID, s.Driver)
	if ev.FromName != "" {
		caption += fmt.Sprintf("\nОт: @%s", ev.FromName)
	}

	forward := domain.Action{ToAdmins: true, Caption: caption}
	if ev.Kind == domain.EventPhoto {
		forward.PhotoID = ev.Value
	} else {
		forward.DocumentID = ev.Value
	}

	// Закрываем заявку в реестре; отсутствие записи не мешает пересылке,
	// номер мог быть введён вручную.
	if _, err := e.requests.Fulfill(ctx, s.Driver, requestID); err != nil {
		e.log.Info("Заявка не найдена при закрытии",
			chatIDKey, ev.From,
			"request_id", requestID,
			correlationIDKey, s.CorrelationID,
		)
	}

	prometheus.DocumentsForwarded.Inc()
	e.appendAudit(ctx, domain.AuditRecord{
		RequestID: requestID,
		Driver:    s.Driver,
		PhotoID:   ev.Value,
		Origin:    domain.RoleDriver,
	})

	actions := []domain.Action{
		forward,
		text(ev.From, msgDocsReceived),
	}

	prometheus.ActiveFlows.Dec()
	s.Reset()
	return actions
}
