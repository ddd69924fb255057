package search

import "jobmate/jobboard/internal/model"

// Search returns the jobs matching query, location and criteria in their
// original order. The result never shares a backing array with jobs.
func Search(jobs []model.JobRecord, query, location string, c model.FilterCriteria) []model.JobRecord {
	return defaultMatcher.Search(jobs, query, location, c)
}

// Search is the Matcher-bound form of Search.
func (m *Matcher) Search(jobs []model.JobRecord, query, location string, c model.FilterCriteria) []model.JobRecord {
	out := make([]model.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if m.Matches(job, query, location, c) {
			out = append(out, job)
		}
	}
	return out
}
