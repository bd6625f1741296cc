package sessionStore

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

func TestStore_GetCreatesSession(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, first.Step)
	assert.NotEmpty(t, first.CorrelationID)

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.CorrelationID, again.CorrelationID)

	other, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.CorrelationID, other.CorrelationID)
}

func TestStore_UpdateIsVisible(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	updated, err := s.Update(ctx, 1, func(session *domain.Session) {
		session.Step = domain.StepAwaitingPhoto
		session.RequestNumber = "1042"
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingPhoto, updated.Step)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1042", got.RequestNumber)

	// чужая сессия не затронута
	other, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, other.Step)
	assert.Empty(t, other.RequestNumber)
}

func TestStore_ResetIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Update(ctx, 1, func(session *domain.Session) {
		session.Step = domain.StepAwaitingDocs
		session.Driver = "Уранов"
		session.RequestID = "1042"
	})
	require.NoError(t, err)
	correlationID := s.CorrelationID(ctx, 1)

	require.NoError(t, s.Reset(ctx, 1))
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, got.Step)
	assert.Empty(t, got.Driver)
	assert.Empty(t, got.RequestID)
	assert.Equal(t, correlationID, got.CorrelationID)

	// повторный сброс ничего не меняет
	require.NoError(t, s.Reset(ctx, 1))
	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestStore_ConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, 1, func(session *domain.Session) {
				count, _ := strconv.Atoi(session.RequestNumber)
				session.RequestNumber = strconv.Itoa(count + 1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(n), got.RequestNumber)
}

func TestStore_ActiveChats(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, _ = s.Get(ctx, 1)
	_, _ = s.Get(ctx, 2)

	assert.ElementsMatch(t, []int64{1, 2}, s.ActiveChats(ctx))
}
