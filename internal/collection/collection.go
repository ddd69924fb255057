// Package collection stores named lists of records on a storage.Medium.
//
// Two adapters satisfy Store:
//
//	Collection  read → modify → write back, last writer wins
//	Versioned   compare-and-swap on the stored value, retried on conflict
//
// Reads never fail: a missing key, an unreadable medium or a corrupt value
// all read as an empty list.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/storage"
)

// Well-known collection names.
const (
	SavedJobs     = "saved_jobs"
	Applications  = "job_applications"
	SearchHistory = "job-search-history"
)

// schemaVersion is written into every envelope.
const schemaVersion = 1

// Store is a named, ordered list of T.
type Store[T any] interface {
	// All returns the stored items, or an empty non-nil slice.
	All(ctx context.Context) []T
	// SetAll replaces the whole collection.
	SetAll(ctx context.Context, items []T) error
	// Get finds an item by id with a linear scan.
	Get(ctx context.Context, id string) (T, bool)
	// Update applies fn to a copy of the items and stores the result.
	Update(ctx context.Context, fn func(items []T) ([]T, error)) error
	// Clear removes the collection.
	Clear(ctx context.Context) error
}

// ErrConflict is returned by Versioned.Update when every attempt lost a race.
var ErrConflict = errors.New("collection: concurrent update conflict")

// envelope is the stored JSON shape.
type envelope[T any] struct {
	Schema int `json:"schema"`
	Rev    int `json:"rev"`
	Items  []T `json:"items"`
}

// Collection is the last-writer-wins Store.
type Collection[T any] struct {
	medium storage.Medium
	name   string
	idOf   func(T) string
	log    zerolog.Logger
}

// New binds a collection called name to medium. idOf extracts the key used
// by Get.
func New[T any](medium storage.Medium, name string, idOf func(T) string, log zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		medium: medium,
		name:   name,
		idOf:   idOf,
		log:    log.With().Str("collection", name).Logger(),
	}
}

// Name returns the storage key of the collection.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) All(ctx context.Context) []T {
	env, _, err := c.load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("read failed, treating collection as empty")
	}
	return env.Items
}

func (c *Collection[T]) SetAll(ctx context.Context, items []T) error {
	env, _, _ := c.load(ctx)
	raw, err := encode(items, env.Rev+1)
	if err != nil {
		return err
	}
	if err := c.medium.Set(ctx, c.name, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	return find(c.All(ctx), id, c.idOf)
}

func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	next, err := fn(c.All(ctx))
	if err != nil {
		return err
	}
	return c.SetAll(ctx, next)
}

func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.medium.Remove(ctx, c.name); err != nil {
		return fmt.Errorf("clear %s: %w", c.name, err)
	}
	return nil
}

// load returns the decoded envelope and the stored value, nil when the key
// is absent. A malformed value decodes as empty; only a failing medium is
// an error, and the envelope is empty then too.
func (c *Collection[T]) load(ctx context.Context) (envelope[T], *string, error) {
	raw, ok, err := c.medium.Get(ctx, c.name)
	if err != nil {
		return emptyEnvelope[T](), nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	if !ok {
		return emptyEnvelope[T](), nil, nil
	}
	env, err := decode[T](raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("malformed stored data, treating collection as empty")
		return emptyEnvelope[T](), &raw, nil
	}
	return env, &raw, nil
}

func emptyEnvelope[T any]() envelope[T] {
	return envelope[T]{Schema: schemaVersion, Items: []T{}}
}

// decode accepts the current envelope and the bare array written by older
// clients.
func decode[T any](raw string) (envelope[T], error) {
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return envelope[T]{}, fmt.Errorf("parse: %w", err)
	}

	var env envelope[T]
	switch firstByte(probe) {
	case '[':
		if err := json.Unmarshal(probe, &env.Items); err != nil {
			return envelope[T]{}, fmt.Errorf("parse legacy list: %w", err)
		}
		env.Schema = schemaVersion
	case '{':
		if err := json.Unmarshal(probe, &env); err != nil {
			return envelope[T]{}, fmt.Errorf("parse envelope: %w", err)
		}
		if env.Schema != schemaVersion {
			return envelope[T]{}, fmt.Errorf("unsupported schema %d", env.Schema)
		}
	case 'n':
		// A stored JSON null reads as empty.
		env.Schema = schemaVersion
	default:
		return envelope[T]{}, fmt.Errorf("unexpected JSON value")
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env, nil
}

func encode[T any](items []T, rev int) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(envelope[T]{Schema: schemaVersion, Rev: rev, Items: items})
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(b), nil
}

func firstByte(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}
