package usecase

import (
	"context"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

type SessionProvider interface {
	Update(ctx context.Context, chatID int64, mutate func(*domain.Session)) (domain.Session, error)
	CorrelationID(ctx context.Context, chatID int64) string
}

type RequestProvider interface {
	Assign(ctx context.Context, req domain.Request) error
	ListFor(ctx context.Context, driver string) []domain.Request
	Find(ctx context.Context, driver, id string) (domain.Request, error)
	Fulfill(ctx context.Context, driver, id string) (domain.Request, error)
}

type AuditSink interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
}
