package saved

import (
	"context"
	"slices"
	"strings"
	"time"

	"jobmate/jobboard/internal/collection"
	"jobmate/jobboard/internal/model"
)

// MaxHistory is the number of searches remembered.
const MaxHistory = 10

// SearchEntryID keys history entries by their normalised query + location.
func SearchEntryID(e model.SearchEntry) string {
	return strings.ToLower(strings.TrimSpace(e.Query)) + "\x00" + strings.ToLower(strings.TrimSpace(e.Location))
}

// History manages the job-search-history collection, most recent first.
type History struct {
	store collection.Store[model.SearchEntry]
	now   func() time.Time
}

// NewHistory wraps store. now defaults to time.Now.
func NewHistory(store collection.Store[model.SearchEntry], now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{store: store, now: now}
}

// Record puts the search at the front of the history. Repeating a search
// moves it instead of duplicating it; blank searches are ignored.
func (h *History) Record(ctx context.Context, query, location string) error {
	entry := model.SearchEntry{
		Query:      strings.TrimSpace(query),
		Location:   strings.TrimSpace(location),
		SearchedAt: h.now().UTC(),
	}
	if entry.Query == "" && entry.Location == "" {
		return nil
	}
	id := SearchEntryID(entry)

	return h.store.Update(ctx, func(items []model.SearchEntry) ([]model.SearchEntry, error) {
		items = slices.DeleteFunc(items, func(e model.SearchEntry) bool { return SearchEntryID(e) == id })
		items = append([]model.SearchEntry{entry}, items...)
		if len(items) > MaxHistory {
			items = items[:MaxHistory]
		}
		return items, nil
	})
}

// List returns the remembered searches, most recent first.
func (h *History) List(ctx context.Context) []model.SearchEntry {
	return h.store.All(ctx)
}

// Clear forgets every search.
func (h *History) Clear(ctx context.Context) error {
	return h.store.Clear(ctx)
}
