package redis

import (
	"context"
	"errors"
	"testing"

	"alcyxob/workout-tracker/internal/repository"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "workouts:")
	ctx := context.Background()

	mock.ExpectGet("workouts:" + repository.KeySettings).SetVal(`{"defaultWeightUnit":"kg"}`)
	got, err := store.Get(ctx, repository.KeySettings)
	require.NoError(t, err)
	assert.Equal(t, `{"defaultWeightUnit":"kg"}`, string(got))

	mock.ExpectGet("workouts:" + repository.KeyWorkouts).RedisNil()
	_, err = store.Get(ctx, repository.KeyWorkouts)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectGet("workouts:" + repository.KeyExercises).SetErr(errors.New("connection refused"))
	_, err = store.Get(ctx, repository.KeyExercises)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetRemove(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "workouts:")
	ctx := context.Background()

	value := []byte(`[]`)
	mock.ExpectSet("workouts:"+repository.KeyWorkouts, value, 0).SetVal("OK")
	require.NoError(t, store.Set(ctx, repository.KeyWorkouts, value))

	mock.ExpectDel("workouts:" + repository.KeyWorkouts).SetVal(1)
	require.NoError(t, store.Remove(ctx, repository.KeyWorkouts))

	mock.ExpectDel("workouts:" + repository.KeyWorkouts).SetErr(errors.New("readonly"))
	require.Error(t, store.Remove(ctx, repository.KeyWorkouts))

	require.NoError(t, mock.ExpectationsWereMet())
}
