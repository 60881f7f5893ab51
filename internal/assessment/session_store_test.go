package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisSessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisSessionStore(rdb, newFixedWizard(), 0)
}

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(state.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("assessment:session:"+state.ID))
	assert.Equal(t, DefaultSessionTTL, mr.TTL("assessment:session:"+state.ID))

	w := store.wizard
	require.NoError(t, w.SubmitContact(state, validContact()))
	require.NoError(t, w.RecordAnswer(state, "strategy-vision", OptionValue(2)))
	require.NoError(t, w.RecordAnswer(state, "strategy-sponsorship", NumberValue(40)))
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, state.ID, loaded.ID)
	assert.Equal(t, 1, loaded.CurrentStep)
	assert.Equal(t, state.TotalSteps, loaded.TotalSteps)
	assert.Equal(t, state.UserInfo, loaded.UserInfo)
	assert.Equal(t, state.Answers, loaded.Answers)
	assert.True(t, state.CreatedAt.Equal(loaded.CreatedAt))
}

func TestRedisSessionStore_NotFound(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	_, err := store.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	state, err := store.Create(ctx)
	require.NoError(t, err)
	mr.FastForward(DefaultSessionTTL + time.Minute)

	_, err = store.Get(ctx, state.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Delete(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, state.ID))
	assert.ErrorIs(t, store.Delete(ctx, state.ID), ErrSessionNotFound)
}

func TestRedisSessionStore_RedisErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(rdb, nil, time.Minute)
	ctx := context.Background()
	id := uuid.New().String()

	mock.ExpectGet("assessment:session:" + id).SetErr(errors.New("connection refused"))
	_, err := store.Get(ctx, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)

	mock.ExpectGet("assessment:session:" + id).SetVal("{not json")
	_, err = store.Get(ctx, id)
	assert.Error(t, err)

	mock.ExpectDel("assessment:session:" + id).SetErr(errors.New("connection refused"))
	assert.Error(t, store.Delete(ctx, id))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_Update(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)

	updated, err := store.Update(ctx, state.ID, func(s *AssessmentState) error {
		return store.wizard.SubmitContact(s, validContact())
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStep)

	loaded, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", loaded.UserInfo.Name)
	assert.Equal(t, DefaultSessionTTL, mr.TTL("assessment:session:"+state.ID))
}

func TestRedisSessionStore_Update_StepErrorLeavesStateUntouched(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)

	_, err = store.Update(ctx, state.ID, func(s *AssessmentState) error {
		s.CurrentStep = 3
		return ErrStepIncomplete
	})
	assert.ErrorIs(t, err, ErrStepIncomplete)

	loaded, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.CurrentStep)
}

func TestRedisSessionStore_Update_NotFound(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()
	noop := func(*AssessmentState) error { return nil }

	_, err := store.Update(ctx, uuid.New().String(), noop)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Update(ctx, "not-a-uuid", noop)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Update_ConcurrentWritersKeepEveryAnswer(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()
	w := store.wizard

	state, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, w.SubmitContact(state, validContact()))
	require.NoError(t, store.Save(ctx, state))

	questions := w.Catalog().QuestionsFor("strategy")
	require.NotEmpty(t, questions)
	require.LessOrEqual(t, len(questions), maxUpdateAttempts)

	var wg sync.WaitGroup
	errs := make(chan error, len(questions))
	for _, q := range questions {
		wg.Add(1)
		go func(questionID string) {
			defer wg.Done()
			_, err := store.Update(ctx, state.ID, func(s *AssessmentState) error {
				return w.RecordAnswer(s, questionID, OptionValue(1))
			})
			errs <- err
		}(q.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	loaded, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Answers, len(questions))
	for _, q := range questions {
		assert.Contains(t, loaded.Answers, q.ID)
	}
}

func TestRedisSessionStore_Update_RetriesOnConflict(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)

	calls := 0
	updated, err := store.Update(ctx, state.ID, func(s *AssessmentState) error {
		calls++
		if calls == 1 {
			// A write between WATCH and EXEC aborts the first attempt.
			mr.Set("assessment:session:"+state.ID, mustJSON(t, s))
		}
		return store.wizard.SubmitContact(s, validContact())
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, updated.CurrentStep)
}

func TestRedisSessionStore_Update_GivesUpAfterRepeatedConflicts(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	state, err := store.Create(ctx)
	require.NoError(t, err)

	calls := 0
	_, err = store.Update(ctx, state.ID, func(s *AssessmentState) error {
		calls++
		mr.Set("assessment:session:"+state.ID, mustJSON(t, s))
		return nil
	})
	assert.ErrorIs(t, err, ErrSessionConflict)
	assert.Equal(t, maxUpdateAttempts, calls)
}

func mustJSON(t *testing.T, s *AssessmentState) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}
