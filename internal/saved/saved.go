// Package saved keeps the user's bookmarked jobs and recent searches.
package saved

import (
	"context"
	"slices"
	"time"

	"jobmate/jobboard/internal/collection"
	"jobmate/jobboard/internal/model"
)

// SavedJobID is the id extractor for the saved_jobs collection.
func SavedJobID(s model.SavedJob) string { return s.ID }

// Jobs manages the saved_jobs collection.
type Jobs struct {
	store collection.Store[model.SavedJob]
	now   func() time.Time
}

// NewJobs wraps store. now defaults to time.Now.
func NewJobs(store collection.Store[model.SavedJob], now func() time.Time) *Jobs {
	if now == nil {
		now = time.Now
	}
	return &Jobs{store: store, now: now}
}

// Save bookmarks job. Saving an id that is already saved changes nothing
// and reports added=false.
func (j *Jobs) Save(ctx context.Context, job model.JobRecord) (added bool, err error) {
	err = j.store.Update(ctx, func(items []model.SavedJob) ([]model.SavedJob, error) {
		if slices.ContainsFunc(items, func(s model.SavedJob) bool { return s.ID == job.ID }) {
			added = false
			return items, nil
		}
		added = true
		return append(items, model.SavedJob{JobRecord: job, SavedAt: j.now().UTC()}), nil
	})
	return added, err
}

// Unsave removes the bookmark. Unknown ids are a no-op.
func (j *Jobs) Unsave(ctx context.Context, jobID string) error {
	if _, ok := j.store.Get(ctx, jobID); !ok {
		return nil
	}
	return j.store.Update(ctx, func(items []model.SavedJob) ([]model.SavedJob, error) {
		return slices.DeleteFunc(items, func(s model.SavedJob) bool { return s.ID == jobID }), nil
	})
}

// Toggle saves an unsaved job and unsaves a saved one. It reports whether
// the job is saved afterwards.
func (j *Jobs) Toggle(ctx context.Context, job model.JobRecord) (bool, error) {
	if j.IsSaved(ctx, job.ID) {
		return false, j.Unsave(ctx, job.ID)
	}
	_, err := j.Save(ctx, job)
	return err == nil, err
}

// IsSaved reports whether jobID is bookmarked.
func (j *Jobs) IsSaved(ctx context.Context, jobID string) bool {
	_, ok := j.store.Get(ctx, jobID)
	return ok
}

// List returns the saved jobs in the order they were saved.
func (j *Jobs) List(ctx context.Context) []model.SavedJob {
	return j.store.All(ctx)
}
