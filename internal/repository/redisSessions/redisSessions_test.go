package redisSessions

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFromClient(client), client
}

func TestStore_GetCreatesSession(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, first.Step)
	assert.NotEmpty(t, first.CorrelationID)

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.CorrelationID, again.CorrelationID)
}

func TestStore_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	s, client := newTestStore(t)

	_, err := s.Update(ctx, 1, func(session *domain.Session) {
		session.Step = domain.StepAwaitingDocs
		session.Driver = "Уранов"
		session.RequestID = "1042"
	})
	require.NoError(t, err)

	// новый экземпляр поверх того же клиента видит состояние
	fresh := NewFromClient(client)
	got, err := fresh.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingDocs, got.Step)
	assert.Equal(t, "Уранов", got.Driver)
	assert.Equal(t, "1042", got.RequestID)
}

func TestStore_ResetKeepsCorrelationID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Update(ctx, 1, func(session *domain.Session) {
		session.Step = domain.StepAwaitingPhoto
		session.PhotoID = "P1"
	})
	require.NoError(t, err)
	correlationID := s.CorrelationID(ctx, 1)

	require.NoError(t, s.Reset(ctx, 1))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, got.Step)
	assert.Empty(t, got.PhotoID)
	assert.Equal(t, correlationID, got.CorrelationID)
}
