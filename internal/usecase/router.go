package usecase

import "github.com/minchenkova509/telegram-bot/internal/domain"

// Route classifies a chat as admin or driver. Membership is checked on
// every event rather than cached on the session.
func (e *Engine) Route(chatID int64) domain.Role {
	for _, id := range e.admins {
		if id == chatID {
			return domain.RoleAdmin
		}
	}
	return domain.RoleDriver
}
