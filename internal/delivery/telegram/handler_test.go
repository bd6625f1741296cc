package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

func messageUpdate(msg *tgbotapi.Message) tgbotapi.Update {
	return tgbotapi.Update{Message: msg}
}

func TestToEvent(t *testing.T) {
	chat := &tgbotapi.Chat{ID: 42}
	user := &tgbotapi.User{UserName: "uranov"}

	tests := []struct {
		name   string
		update tgbotapi.Update
		want   domain.Event
		ok     bool
	}{
		{
			name: "command",
			update: messageUpdate(&tgbotapi.Message{
				Chat: chat, From: user,
				Text:     "/start",
				Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
			}),
			want: domain.Event{From: 42, FromName: "uranov", Kind: domain.EventCommand, Value: "start"},
			ok:   true,
		},
		{
			name: "text",
			update: messageUpdate(&tgbotapi.Message{
				Chat: chat, From: user, Text: "  1042  ",
			}),
			want: domain.Event{From: 42, FromName: "uranov", Kind: domain.EventText, Value: "1042"},
			ok:   true,
		},
		{
			name: "photo takes largest size",
			update: messageUpdate(&tgbotapi.Message{
				Chat: chat, From: user,
				Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "big"}},
			}),
			want: domain.Event{From: 42, FromName: "uranov", Kind: domain.EventPhoto, Value: "big"},
			ok:   true,
		},
		{
			name: "document",
			update: messageUpdate(&tgbotapi.Message{
				Chat: chat, From: user,
				Document: &tgbotapi.Document{FileID: "doc"},
			}),
			want: domain.Event{From: 42, FromName: "uranov", Kind: domain.EventDocument, Value: "doc"},
			ok:   true,
		},
		{
			name: "callback selection",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				From:    &tgbotapi.User{UserName: "uranov"},
				Data:    "Уранов",
				Message: &tgbotapi.Message{Chat: chat},
			}},
			want: domain.Event{From: 42, FromName: "uranov", Kind: domain.EventSelect, Value: "Уранов"},
			ok:   true,
		},
		{
			name:   "empty update is dropped",
			update: tgbotapi.Update{},
			ok:     false,
		},
		{
			name: "whitespace text is dropped",
			update: messageUpdate(&tgbotapi.Message{
				Chat: chat, From: user, Text: "   ",
			}),
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toEvent(tt.update)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUpdateChatID(t *testing.T) {
	chat := &tgbotapi.Chat{ID: 42}

	id, ok := updateChatID(messageUpdate(&tgbotapi.Message{Chat: chat}))
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = updateChatID(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		Message: &tgbotapi.Message{Chat: chat},
	}})
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = updateChatID(tgbotapi.Update{})
	assert.False(t, ok)
}

func TestOptionsKeyboard(t *testing.T) {
	kb := optionsKeyboard([]string{"Ерёмин", "Уранов"})
	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "Ерёмин", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "Уранов", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "короткий", truncate("короткий"))

	long := strings.Repeat("a", 5000)
	got := truncate(long)
	assert.Len(t, got, 4003)
	assert.True(t, strings.HasSuffix(got, "..."))
}
