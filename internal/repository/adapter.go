package repository

import (
	"context"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Adapter layers JSON (de)serialisation and fail-soft semantics over a KVStore.
// Reads degrade to a supplied default; every failure is logged and reported to
// the optional failure hook.
type Adapter struct {
	kv        KVStore
	onFailure func(*PersistenceError)
}

func NewAdapter(kv KVStore, onFailure func(*PersistenceError)) *Adapter {
	return &Adapter{
		kv:        kv,
		onFailure: onFailure,
	}
}

// Load decodes the document at key. When the key is absent it returns def and
// ErrNotFound; when the read or decode fails it returns def and the logged
// *PersistenceError, so callers can tell "nothing stored" from "unreadable".
func Load[T any](ctx context.Context, a *Adapter, key string, def T) (T, error) {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, ErrNotFound
		}
		return def, a.fail("get", key, err)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return def, a.fail("decode", key, err)
	}
	return value, nil
}

// Save encodes value and stores it at key.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return a.fail("encode", key, err)
	}
	if err := a.kv.Set(ctx, key, raw); err != nil {
		return a.fail("set", key, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.Remove(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return a.fail("remove", key, err)
	}
	return nil
}

// Clear removes every key, attempting all of them even when some fail.
func (a *Adapter) Clear(ctx context.Context, keys ...string) error {
	var errs error
	for _, key := range keys {
		errs = multierr.Append(errs, a.Remove(ctx, key))
	}
	return errs
}

func (a *Adapter) fail(op, key string, err error) error {
	perr := &PersistenceError{Op: op, Key: key, Err: err}
	log.WithFields(log.Fields{"op": op, "key": key}).Errorf("persistence failure: %s", err)
	if a.onFailure != nil {
		a.onFailure(perr)
	}
	return perr
}
