package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant-booking/internal/data/entity"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionStore holds one booking session per user. Get never returns nil for
// a missing user; it returns a fresh idle session instead.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*entity.Session, error)
	Set(ctx context.Context, session *entity.Session) error
	Clear(ctx context.Context, userID string) error
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]entity.Session)}
}

func (s *memorySessionStore) Get(_ context.Context, userID string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return entity.NewSession(userID), nil
	}
	return cloneSession(session), nil
}

func (s *memorySessionStore) Set(_ context.Context, session *entity.Session) error {
	if session == nil || session.UserID == "" {
		return errors.New("session without user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = *cloneSession(*session)
	return nil
}

func (s *memorySessionStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// cloneSession copies the pointer slots so callers never share state with the store.
func cloneSession(in entity.Session) *entity.Session {
	out := in
	if in.Candidates != nil {
		out.Candidates = append([]entity.Restaurant(nil), in.Candidates...)
	}
	if in.Restaurant != nil {
		r := *in.Restaurant
		out.Restaurant = &r
	}
	if in.Time != nil {
		t := *in.Time
		out.Time = &t
	}
	if in.Guests != nil {
		g := *in.Guests
		out.Guests = &g
	}
	if in.Date != nil {
		d := *in.Date
		out.Date = &d
	}
	return &out
}

const sessionKeyPrefix = "booking:session:"

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisSessionStore keeps sessions as JSON with an idle TTL that is
// refreshed on every Set.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, log *zap.Logger) SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "session")),
	}
}

func (s *redisSessionStore) Get(ctx context.Context, userID string) (*entity.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.NewSession(userID), nil
	}
	if err != nil {
		s.log.Error("Failed to load session", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("load session %s: %w", userID, err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.log.Warn("Discarding undecodable session", zap.Error(err), zap.String("user_id", userID))
		return entity.NewSession(userID), nil
	}
	return &session, nil
}

func (s *redisSessionStore) Set(ctx context.Context, session *entity.Session) error {
	if session == nil || session.UserID == "" {
		return errors.New("session without user id")
	}

	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.UserID, err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.UserID, b, s.ttl).Err(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err), zap.String("user_id", session.UserID))
		return fmt.Errorf("save session %s: %w", session.UserID, err)
	}
	return nil
}

func (s *redisSessionStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("clear session %s: %w", userID, err)
	}
	return nil
}
