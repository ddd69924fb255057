package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/search"
)

func remoteScenario() []model.JobRecord {
	return []model.JobRecord{
		{ID: "1", JobType: model.JobTypeRemote, Salary: &model.Salary{Max: 5000}},
		{ID: "2", JobType: model.JobTypeFullTime, Salary: &model.Salary{Max: 3000}},
	}
}

func TestSearch_RemoteThenSortScenario(t *testing.T) {
	jobs := remoteScenario()

	result := search.Search(jobs, "", "", model.FilterCriteria{RemoteWork: true})
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)

	sorted := search.Sort(result, model.SortSalaryLow)
	assert.Equal(t, result, sorted)
}

func TestSearch_PreservesOrderAndDoesNotMutate(t *testing.T) {
	jobs := []model.JobRecord{
		{ID: "a", Title: "Go developer"},
		{ID: "b", Title: "Java developer"},
		{ID: "c", Title: "Golang lead"},
	}
	before := append([]model.JobRecord(nil), jobs...)

	got := search.Search(jobs, "go", "", model.FilterCriteria{})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, before, jobs)
}

func TestSearch_DeterministicAndDistinct(t *testing.T) {
	jobs := remoteScenario()
	first := search.Search(jobs, "", "", model.FilterCriteria{})
	second := search.Search(jobs, "", "", model.FilterCriteria{})
	assert.Equal(t, first, second)

	first[0].ID = "changed"
	assert.Equal(t, "1", second[0].ID)
	assert.Equal(t, "1", jobs[0].ID)
}

// Every returned job passes every individual check.
func TestSearch_ResultsSatisfyEveryCheck(t *testing.T) {
	m := fixedMatcher()
	jobs := []model.JobRecord{
		{ID: "1", Title: "Go", Location: "Remote", JobType: model.JobTypeRemote, PostedDate: now.Add(-time.Hour)},
		{ID: "2", Title: "Go", Location: "Paris", JobType: model.JobTypeFullTime, PostedDate: now.Add(-time.Hour)},
		{ID: "3", Title: "Go", Location: "Remote", JobType: model.JobTypeRemote, PostedDate: now.Add(-100 * time.Hour)},
		{ID: "4", Title: "Go", Location: "Remote", JobType: model.JobTypeRemote, Salary: &model.Salary{Max: 9000}, PostedDate: now},
		{ID: "5", Title: "Rust", Location: "Remote", JobType: model.JobTypeRemote, PostedDate: now},
	}
	c := model.FilterCriteria{RemoteWork: true, DatePosted: model.DatePosted3d, SalaryRange: model.SalaryRange0To2000}

	got := m.Search(jobs, "go", "remote", c)
	ids := make([]string, 0, len(got))
	for _, j := range got {
		ids = append(ids, j.ID)
		assert.True(t, search.MatchesText(j, "go"))
		assert.True(t, search.MatchesLocation(j, "remote"))
		assert.True(t, search.MatchesRemote(j, true))
		assert.True(t, search.MatchesDatePosted(j, c.DatePosted, now))
		assert.True(t, search.MatchesSalaryRange(j, c.SalaryRange))
	}
	assert.Equal(t, []string{"1"}, ids)
}

func TestSearch_EmptyInput(t *testing.T) {
	got := search.Search(nil, "x", "", model.FilterCriteria{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
