package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "workouts.db"))
	require.NoError(t, err)
	defer s.Close()

	kvtest.Run(t, s)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, repository.KeySettings, []byte(`{"defaultWeightUnit":"lb"}`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, repository.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"defaultWeightUnit":"lb"}`, string(got))
}
