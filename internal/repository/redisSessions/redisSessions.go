package redisSessions

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/minchenkova509/telegram-bot/configs"
	"github.com/minchenkova509/telegram-bot/internal/domain"
)

const keyPrefix = "bot:session:"

// Store keeps sessions in Redis as JSON, one key per chat. The bot is a
// single process, so per-chat write serialization is done with local keyed
// mutexes rather than WATCH transactions.
type Store struct {
	client *redis.Client

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(cfg *configs.Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RD.Host,
		Username:     cfg.RD.User,
		Password:     cfg.RD.Password,
		DB:           cfg.RD.DB,
		MaxRetries:   cfg.RD.MaxRetries,
		DialTimeout:  cfg.RD.DialTimeout,
		ReadTimeout:  cfg.RD.ReadTimeout,
		WriteTimeout: cfg.RD.WriteTimeout,
	})
	return NewFromClient(client)
}

// NewFromClient builds a store over an existing client, e.g. miniredis in
// tests.
func NewFromClient(client *redis.Client) *Store {
	return &Store{
		client: client,
		locks:  make(map[int64]*sync.Mutex),
	}
}

func key(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

func (s *Store) lockFor(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	return l
}

func (s *Store) load(ctx context.Context, chatID int64) (domain.Session, error) {
	const op = "redisSessions.load"

	val, err := s.client.Get(ctx, key(chatID)).Result()
	if err == redis.Nil {
		session := domain.Session{CorrelationID: uuid.New().String()}
		if err = s.save(ctx, chatID, session); err != nil {
			return domain.Session{}, err
		}
		return session, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var session domain.Session
	if err = json.Unmarshal([]byte(val), &session); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

func (s *Store) save(ctx context.Context, chatID int64, session domain.Session) error {
	const op = "redisSessions.save"

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.client.Set(ctx, key(chatID), data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, chatID int64) (domain.Session, error) {
	l := s.lockFor(chatID)
	l.Lock()
	defer l.Unlock()
	return s.load(ctx, chatID)
}

func (s *Store) Update(ctx context.Context, chatID int64, mutate func(*domain.Session)) (domain.Session, error) {
	l := s.lockFor(chatID)
	l.Lock()
	defer l.Unlock()

	session, err := s.load(ctx, chatID)
	if err != nil {
		return domain.Session{}, err
	}
	mutate(&session)
	if err = s.save(ctx, chatID, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *Store) Reset(ctx context.Context, chatID int64) error {
	_, err := s.Update(ctx, chatID, func(session *domain.Session) {
		session.Reset()
	})
	return err
}

func (s *Store) CorrelationID(ctx context.Context, chatID int64) string {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return ""
	}
	return session.CorrelationID
}
