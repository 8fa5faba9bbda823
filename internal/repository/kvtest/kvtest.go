// Package kvtest holds the behaviour every repository.KVStore backend must share.
package kvtest

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises kv with get/set/overwrite/remove round trips on the real
// storage keys.
func Run(t *testing.T, kv repository.KVStore) {
	t.Helper()
	ctx := context.Background()

	for _, key := range repository.AllKeys {
		_, err := kv.Get(ctx, key)
		require.ErrorIs(t, err, repository.ErrNotFound, key)
	}

	require.NoError(t, kv.Set(ctx, repository.KeyWorkouts, []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, repository.KeySettings, []byte(`{"defaultWeightUnit":"kg"}`)))

	got, err := kv.Get(ctx, repository.KeyWorkouts)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))

	require.NoError(t, kv.Set(ctx, repository.KeyWorkouts, []byte(`[{"id":"w1"}]`)))
	got, err = kv.Get(ctx, repository.KeyWorkouts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"w1"}]`, string(got))

	require.NoError(t, kv.Remove(ctx, repository.KeyWorkouts))
	_, err = kv.Get(ctx, repository.KeyWorkouts)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// removing an absent key is not an error
	require.NoError(t, kv.Remove(ctx, repository.KeyExercises))

	got, err = kv.Get(ctx, repository.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"defaultWeightUnit":"kg"}`, string(got))
}
