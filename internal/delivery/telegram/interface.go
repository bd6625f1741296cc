package telegram

import (
	"context"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

type Workflow interface {
	Handle(ctx context.Context, ev domain.Event) ([]domain.Action, error)
}
