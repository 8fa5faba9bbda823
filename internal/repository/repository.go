package repository

import (
	"context"
	"fmt"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Storage keys, one per persisted collection.
const (
	KeyExercises = "fitness-app-exercises"
	KeyWorkouts  = "fitness-app-workouts"
	KeySettings  = "fitness-app-settings"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyExercises, KeyWorkouts, KeySettings}

// KVStore is the durable key-value backend. Values are opaque JSON documents.
type KVStore interface {
	// Get returns ErrNotFound when key has never been set or was removed.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// PersistenceError records a failed storage read, write or (de)serialisation.
// The adapter logs it and falls back; it never reaches the entity store's callers.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %s", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
