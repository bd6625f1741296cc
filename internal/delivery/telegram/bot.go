package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/minchenkova509/telegram-bot/configs"
)

// Bot pulls updates over long polling and feeds them to the workflow.
// Updates are dispatched to one queue per chat: events of a single chat
// are handled in arrival order, different chats run in parallel.
type Bot struct {
	*tgbotapi.BotAPI
	workflow    Workflow
	admins      []int64
	pollTimeout int
	log         *slog.Logger

	mu      sync.Mutex
	queues  map[int64]chan tgbotapi.Update
	wg      sync.WaitGroup
	runDone chan struct{}
}

func NewBot(cfg *configs.Config, workflow Workflow, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: cfg.TG.ConnectionTimeout,
	}

	return &Bot{
		BotAPI:      api,
		workflow:    workflow,
		admins:      cfg.Bot.Admins,
		pollTimeout: cfg.TG.PollTimeout,
		log:         log,
		queues:      make(map[int64]chan tgbotapi.Update),
		runDone:     make(chan struct{}),
	}, nil
}

func (b *Bot) Run(ctx context.Context) {
	defer close(b.runDone)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			chatID, ok := updateChatID(update)
			if !ok {
				continue
			}
			b.queueFor(ctx, chatID) <- update
		}
	}
}

func (b *Bot) queueFor(ctx context.Context, chatID int64) chan<- tgbotapi.Update {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.queues[chatID]
	if !ok {
		q = make(chan tgbotapi.Update, 16)
		b.queues[chatID] = q
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for update := range q {
				b.handleUpdate(ctx, update)
			}
		}()
	}
	return q
}

// Stop drains the per-chat queues, waiting at most until ctx expires.
// Queues are closed only after the receive loop has exited.
func (b *Bot) Stop(ctx context.Context) {
	b.StopReceivingUpdates()

	select {
	case <-b.runDone:
	case <-ctx.Done():
		b.log.Warn("Остановка по таймауту, цикл обновлений ещё работает")
		return
	}

	b.mu.Lock()
	for _, q := range b.queues {
		close(q)
	}
	b.queues = make(map[int64]chan tgbotapi.Update)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		b.log.Warn("Остановка по таймауту, часть обновлений не обработана")
	}
}

func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	}
	return 0, false
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	_, err := b.Request(cfg)
	return err
}
