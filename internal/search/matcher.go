// Package search implements job filtering, ordering and pagination over an
// in-memory slice of listings.
package search

import (
	"slices"
	"strings"
	"time"

	"jobmate/jobboard/internal/model"
)

// Matcher decides whether a single job satisfies a query and a set of
// filter criteria. Now is consulted for the datePosted facet; nil means
// time.Now.
type Matcher struct {
	Now func() time.Time
}

var defaultMatcher = &Matcher{}

// Matches reports whether job passes every check, using the wall clock.
func Matches(job model.JobRecord, query, location string, c model.FilterCriteria) bool {
	return defaultMatcher.Matches(job, query, location, c)
}

// Matches reports whether job passes every check. All checks are ANDed.
func (m *Matcher) Matches(job model.JobRecord, query, location string, c model.FilterCriteria) bool {
	return MatchesText(job, query) &&
		MatchesLocation(job, location) &&
		MatchesJobTypes(job, c.JobTypes) &&
		MatchesLocations(job, c.Locations) &&
		MatchesRemote(job, c.RemoteWork) &&
		MatchesDatePosted(job, c.DatePosted, m.now()) &&
		MatchesSalaryRange(job, c.SalaryRange) &&
		MatchesCategories(job, c.Categories) &&
		MatchesExperience(job, c.Experience) &&
		MatchesCompanySize(job, c.CompanySize)
}

func (m *Matcher) now() time.Time {
	if m == nil || m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// MatchesText is a case-insensitive substring match of query against the
// title, company, description or any skill. An empty query matches.
func MatchesText(job model.JobRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if containsFold(job.Title, q) || containsFold(job.Company, q) || containsFold(job.Description, q) {
		return true
	}
	for _, skill := range job.Skills {
		if containsFold(skill, q) {
			return true
		}
	}
	return false
}

// MatchesLocation is a case-insensitive substring match against the job
// location. An empty location matches.
func MatchesLocation(job model.JobRecord, location string) bool {
	l := strings.ToLower(strings.TrimSpace(location))
	if l == "" {
		return true
	}
	return containsFold(job.Location, l)
}

// MatchesJobTypes passes when types is empty or contains the job type.
func MatchesJobTypes(job model.JobRecord, types []model.JobType) bool {
	return len(types) == 0 || slices.Contains(types, job.JobType)
}

// MatchesLocations passes when locations is empty or holds job.Location
// exactly. This is independent of the free-text location match.
func MatchesLocations(job model.JobRecord, locations []string) bool {
	return len(locations) == 0 || slices.Contains(locations, job.Location)
}

// MatchesRemote restricts to Remote jobs when remote is set.
func MatchesRemote(job model.JobRecord, remote bool) bool {
	return !remote || job.JobType == model.JobTypeRemote
}

// MatchesDatePosted passes when the job is no older than the bucket
// threshold at now. Jobs dated in the future always pass.
func MatchesDatePosted(job model.JobRecord, d model.DatePosted, now time.Time) bool {
	maxAge, ok := d.MaxAge()
	if !ok {
		return true
	}
	return now.Sub(job.PostedDate) <= maxAge
}

// MatchesSalaryRange checks job.Salary.Max against the bucket. Jobs without
// a salary pass whenever a bucket is set.
func MatchesSalaryRange(job model.JobRecord, r model.SalaryRange) bool {
	lo, hi, bounded, ok := r.Bounds()
	if !ok || job.Salary == nil {
		return true
	}
	v := job.Salary.Max
	if !bounded {
		return v >= lo
	}
	return v >= lo && v <= hi
}

// MatchesCategories is not enforced yet and always passes.
func MatchesCategories(model.JobRecord, []string) bool { return true }

// MatchesExperience is not enforced yet and always passes.
func MatchesExperience(model.JobRecord, []string) bool { return true }

// MatchesCompanySize is not enforced yet and always passes.
func MatchesCompanySize(model.JobRecord, []string) bool { return true }

// containsFold reports whether lowerNeedle occurs in s, ignoring case.
// lowerNeedle must already be lower-cased.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
