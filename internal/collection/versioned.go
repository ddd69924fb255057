package collection

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/storage"
)

// DefaultMaxAttempts bounds the retries of Versioned.Update.
const DefaultMaxAttempts = 5

// Versioned is a Store that detects concurrent writers. Every write is a
// compare-and-swap against the value that was read, so two writers racing
// on the same collection cannot silently drop each other's changes.
type Versioned[T any] struct {
	*Collection[T]
	sw          storage.Swapper
	maxAttempts int
}

// NewVersioned binds a collection to a swap-capable medium.
func NewVersioned[T any](medium storage.SwapMedium, name string, idOf func(T) string, log zerolog.Logger) *Versioned[T] {
	return &Versioned[T]{
		Collection:  New(medium, name, idOf, log),
		sw:          medium,
		maxAttempts: DefaultMaxAttempts,
	}
}

// SetAll overwrites the collection, retrying until the write is not racing
// another one.
func (v *Versioned[T]) SetAll(ctx context.Context, items []T) error {
	return v.Update(ctx, func([]T) ([]T, error) { return items, nil })
}

// Update re-reads and re-applies fn after a lost race, up to the attempt
// limit, then returns ErrConflict. A medium that cannot be read fails the
// update straight away.
func (v *Versioned[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	for attempt := 1; attempt <= v.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		env, raw, err := v.load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(env.Items)
		if err != nil {
			return err
		}
		encoded, err := encode(next, env.Rev+1)
		if err != nil {
			return err
		}

		ok, err := v.sw.Swap(ctx, v.name, raw, encoded)
		if err != nil {
			return fmt.Errorf("save %s: %w", v.name, err)
		}
		if ok {
			return nil
		}
		v.log.Debug().Int("attempt", attempt).Msg("lost update race, retrying")
	}
	return ErrConflict
}
