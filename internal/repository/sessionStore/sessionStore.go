package sessionStore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/minchenkova509/telegram-bot/internal/domain"
)

type entry struct {
	mu      sync.Mutex
	session domain.Session
}

// Store keeps one Session per chat in memory. Updates for the same chat
// are serialized on the entry mutex; different chats never block each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*entry
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*entry),
	}
}

func (s *Store) entryFor(chatID int64) *entry {
	s.mu.RLock()
	e, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[chatID]; ok {
		return e
	}
	e = &entry{session: domain.Session{CorrelationID: uuid.New().String()}}
	s.sessions[chatID] = e
	return e
}

// Get returns a copy of the chat's session, creating it on first use.
func (s *Store) Get(ctx context.Context, chatID int64) (domain.Session, error) {
	e := s.entryFor(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, nil
}

// Update applies mutate to the session as one atomic step and returns the
// resulting state.
func (s *Store) Update(ctx context.Context, chatID int64, mutate func(*domain.Session)) (domain.Session, error) {
	e := s.entryFor(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	mutate(&e.session)
	return e.session, nil
}

// Reset clears scratch and returns the session to the initial step.
func (s *Store) Reset(ctx context.Context, chatID int64) error {
	e := s.entryFor(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Reset()
	return nil
}

func (s *Store) CorrelationID(ctx context.Context, chatID int64) string {
	e := s.entryFor(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.CorrelationID
}

// ActiveChats lists chats that currently hold a session.
func (s *Store) ActiveChats(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chats := make([]int64, 0, len(s.sessions))
	for id := range s.sessions {
		chats = append(chats, id)
	}
	return chats
}
