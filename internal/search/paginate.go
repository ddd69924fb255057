package search

import "jobmate/jobboard/internal/model"

// Paginate returns a copy of page pageNumber (1-indexed) of jobs. Pages past
// the end, pageNumber < 1 and pageSize < 1 all yield an empty slice.
func Paginate(jobs []model.JobRecord, pageSize, pageNumber int) []model.JobRecord {
	if pageSize < 1 || pageNumber < 1 {
		return []model.JobRecord{}
	}
	// Compared before multiplying so huge page numbers cannot overflow.
	if len(jobs) == 0 || pageNumber-1 > (len(jobs)-1)/pageSize {
		return []model.JobRecord{}
	}
	start := (pageNumber - 1) * pageSize
	end := start + min(pageSize, len(jobs)-start)

	out := make([]model.JobRecord, end-start)
	copy(out, jobs[start:end])
	return out
}

// TotalPages is the number of pages needed to show total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
