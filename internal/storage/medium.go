// Package storage provides the key-value persistence media that back the
// persisted collections.
package storage

import (
	"context"
	"errors"
)

// Medium is a string key-value store. Get reports ok=false for a key that
// was never written.
type Medium interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Swapper is implemented by media that can replace a value atomically.
// Swap stores value only if the current value equals *old; a nil old means
// the key must not exist. It reports whether the swap happened.
type Swapper interface {
	Swap(ctx context.Context, key string, old *string, value string) (bool, error)
}

// SwapMedium is a Medium with compare-and-swap support.
type SwapMedium interface {
	Medium
	Swapper
}

// ErrEmptyKey is returned for operations on the empty key.
var ErrEmptyKey = errors.New("storage: empty key")

// matches reports whether the current state of a key (cur, present) is the
// state a Swap expects.
func matches(cur string, present bool, old *string) bool {
	if old == nil {
		return !present
	}
	return present && cur == *old
}
