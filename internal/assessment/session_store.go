package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "assessment:session:"
	DefaultSessionTTL = 2 * time.Hour

	maxUpdateAttempts = 5
)

var (
	ErrSessionNotFound = errors.New("assessment session not found")
	ErrSessionConflict = errors.New("assessment session modified concurrently")
)

// SessionStore persists wizard states between requests.
type SessionStore interface {
	Create(ctx context.Context) (*AssessmentState, error)
	Get(ctx context.Context, id string) (*AssessmentState, error)
	Save(ctx context.Context, state *AssessmentState) error
	// Update applies fn to the stored state and saves it only if no other
	// writer touched the session in between. Errors from fn are returned
	// unchanged and nothing is saved.
	Update(ctx context.Context, id string, fn func(*AssessmentState) error) (*AssessmentState, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps each state as JSON under its own key. The TTL is
// renewed on every save.
type RedisSessionStore struct {
	rdb    redis.UniversalClient
	wizard *Wizard
	ttl    time.Duration
}

func NewRedisSessionStore(rdb redis.UniversalClient, wizard *Wizard, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if wizard == nil {
		wizard = NewWizard(nil)
	}
	return &RedisSessionStore{rdb: rdb, wizard: wizard, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisSessionStore) Create(ctx context.Context) (*AssessmentState, error) {
	state := s.wizard.Start(uuid.New().String())
	if err := s.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*AssessmentState, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	return load(ctx, s.rdb, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, rdb getter, id string) (*AssessmentState, error) {
	raw, err := rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var state AssessmentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if state.Answers == nil {
		state.Answers = make(map[string]Answer)
	}
	return &state, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, state *AssessmentState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}
	if err := s.rdb.Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", state.ID, err)
	}
	return nil
}

// Update runs fn inside WATCH/MULTI/EXEC on the session key and retries
// when another writer commits first.
func (s *RedisSessionStore) Update(ctx context.Context, id string, fn func(*AssessmentState) error) (*AssessmentState, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	key := sessionKey(id)

	var updated *AssessmentState
	txf := func(tx *redis.Tx) error {
		state, err := load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return fmt.Errorf("store session %s: %w", id, err)
		}
		updated = state
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionConflict, id)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
