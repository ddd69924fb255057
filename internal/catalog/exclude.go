package catalog

import (
	"strings"

	"jobmate/jobboard/internal/model"
)

// ContainsExcludedTerm reports whether any term appears (case-insensitive)
// in the title, company or description of job. Blank terms are ignored.
func ContainsExcludedTerm(job model.JobRecord, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	combined := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
