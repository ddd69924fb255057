package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/model"
)

// Catalog holds the current snapshot of listings.
type Catalog struct {
	sources []Source
	exclude []string
	log     zerolog.Logger

	mu          sync.RWMutex
	jobs        []model.JobRecord
	byID        map[string]int
	refreshedAt time.Time
}

// New returns an empty catalog fed by sources. Listings containing any of
// the exclude terms are dropped on refresh.
func New(sources []Source, exclude []string, log zerolog.Logger) *Catalog {
	return &Catalog{
		sources: sources,
		exclude: exclude,
		log:     log,
		jobs:    []model.JobRecord{},
		byID:    map[string]int{},
	}
}

// Refresh fetches every source and swaps in the merged snapshot. Ids are
// unique in the snapshot: the first source to produce an id wins. A failing
// source is skipped; when all of them fail the previous snapshot is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	var (
		merged   []model.JobRecord
		seen     = map[string]int{}
		errs     []error
		excluded int
		dupes    int
	)

	for _, src := range c.sources {
		jobs, err := src.Fetch(ctx)
		if err != nil {
			c.log.Warn().Err(err).Str("source", src.Name()).Msg("source failed, skipping")
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		for _, job := range jobs {
			if ContainsExcludedTerm(job, c.exclude) {
				excluded++
				continue
			}
			if _, dup := seen[job.ID]; dup {
				dupes++
				continue
			}
			seen[job.ID] = len(merged)
			merged = append(merged, job)
		}
	}

	if len(c.sources) > 0 && len(errs) == len(c.sources) {
		return fmt.Errorf("refresh catalog: %w", errors.Join(errs...))
	}
	if merged == nil {
		merged = []model.JobRecord{}
	}

	c.mu.Lock()
	c.jobs = merged
	c.byID = seen
	c.refreshedAt = time.Now().UTC()
	c.mu.Unlock()

	c.log.Info().Int("jobs", len(merged)).Int("excluded", excluded).Int("duplicates", dupes).
		Msg("catalog refreshed")
	return nil
}

// Jobs returns a copy of the current snapshot.
func (c *Catalog) Jobs() []model.JobRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.jobs)
}

// Get looks a listing up by id.
func (c *Catalog) Get(id string) (model.JobRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return model.JobRecord{}, false
	}
	return c.jobs[i], true
}

// RefreshedAt is the time of the last successful refresh, zero before the
// first one.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}
