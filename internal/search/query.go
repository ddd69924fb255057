package search

import "jobmate/jobboard/internal/model"

// DefaultPageSize is used when a Query leaves PageSize unset.
const DefaultPageSize = 10

// Query bundles everything the filter controls send for one recomputation.
// Callers reset Page to 1 whenever Text, Location, Criteria or Sort change.
type Query struct {
	Text     string
	Location string
	Criteria model.FilterCriteria
	Sort     model.SortKey
	Page     int
	PageSize int
}

// Result is one rendered page plus the figures needed for pagination
// controls.
type Result struct {
	Jobs       []model.JobRecord `json:"jobs"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Run applies search, sort and pagination in that order.
func Run(jobs []model.JobRecord, q Query) Result {
	return defaultMatcher.Run(jobs, q)
}

// Run is the Matcher-bound form of Run.
func (m *Matcher) Run(jobs []model.JobRecord, q Query) Result {
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	matched := m.Search(jobs, q.Text, q.Location, q.Criteria)
	ordered := Sort(matched, q.Sort)

	return Result{
		Jobs:       Paginate(ordered, size, page),
		Total:      len(ordered),
		Page:       page,
		PageSize:   size,
		TotalPages: TotalPages(len(ordered), size),
	}
}
