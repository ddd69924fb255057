package search

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jobmate/jobboard/internal/model"
)

// Sort returns a new slice ordered by key. The sort is stable, so ties keep
// their input order. Relevance and unknown keys return a plain copy.
func Sort(jobs []model.JobRecord, key model.SortKey) []model.JobRecord {
	out := slices.Clone(jobs)
	if out == nil {
		out = []model.JobRecord{}
	}

	switch key {
	case model.SortNewest:
		slices.SortStableFunc(out, func(a, b model.JobRecord) int {
			return b.PostedDate.Compare(a.PostedDate)
		})
	case model.SortOldest:
		slices.SortStableFunc(out, func(a, b model.JobRecord) int {
			return a.PostedDate.Compare(b.PostedDate)
		})
	case model.SortSalaryHigh:
		slices.SortStableFunc(out, func(a, b model.JobRecord) int {
			return cmp.Compare(b.SalaryMax(), a.SalaryMax())
		})
	case model.SortSalaryLow:
		slices.SortStableFunc(out, func(a, b model.JobRecord) int {
			return cmp.Compare(a.SalaryMax(), b.SalaryMax())
		})
	case model.SortCompany:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.JobRecord) int {
			return col.CompareString(a.Company, b.Company)
		})
	}
	return out
}
