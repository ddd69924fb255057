package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/search"
)

func ids(jobs []model.JobRecord) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func sortFixture() []model.JobRecord {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.JobRecord{
		{ID: "a", Company: "zeta", PostedDate: base.Add(2 * time.Hour), Salary: &model.Salary{Max: 3000}},
		{ID: "b", Company: "Alpha", PostedDate: base, Salary: &model.Salary{Max: 5000}},
		{ID: "c", Company: "Émile", PostedDate: base.Add(time.Hour)},
		{ID: "d", Company: "beta", PostedDate: base.Add(3 * time.Hour), Salary: &model.Salary{Max: 3000}},
	}
}

func TestSort_Keys(t *testing.T) {
	cases := []struct {
		key  model.SortKey
		want []string
	}{
		{model.SortRelevance, []string{"a", "b", "c", "d"}},
		{model.SortNewest, []string{"d", "a", "c", "b"}},
		{model.SortOldest, []string{"b", "c", "a", "d"}},
		{model.SortSalaryHigh, []string{"b", "a", "d", "c"}},
		{model.SortSalaryLow, []string{"c", "a", "d", "b"}},
		{model.SortCompany, []string{"b", "d", "c", "a"}},
		{model.SortKey("bogus"), []string{"a", "b", "c", "d"}},
	}
	for _, c := range cases {
		t.Run(string(c.key), func(t *testing.T) {
			assert.Equal(t, c.want, ids(search.Sort(sortFixture(), c.key)))
		})
	}
}

// Equal salaries keep their input order in both directions.
func TestSort_StableOnTies(t *testing.T) {
	jobs := []model.JobRecord{
		{ID: "x", Salary: &model.Salary{Max: 4000}},
		{ID: "y", Salary: &model.Salary{Max: 4000}},
		{ID: "z", Salary: &model.Salary{Max: 4000}},
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(search.Sort(jobs, model.SortSalaryHigh)))
	assert.Equal(t, []string{"x", "y", "z"}, ids(search.Sort(jobs, model.SortSalaryLow)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	jobs := sortFixture()
	_ = search.Sort(jobs, model.SortNewest)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(jobs))

	out := search.Sort(jobs, model.SortRelevance)
	out[0].ID = "changed"
	assert.Equal(t, "a", jobs[0].ID)
}

func TestParseSortKey_FallsBackToRelevance(t *testing.T) {
	assert.Equal(t, model.SortNewest, model.ParseSortKey("newest"))
	assert.Equal(t, model.SortRelevance, model.ParseSortKey("popularity"))
	assert.Equal(t, model.SortRelevance, model.ParseSortKey(""))
}
