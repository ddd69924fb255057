// Package model defines shared data structures for the job board.
package model

import (
	"fmt"
	"time"
)

// JobType is the employment type of a listing.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
)

// ParseJobType converts a raw string to a JobType, returning an error for
// unknown values.
func ParseJobType(s string) (JobType, error) {
	jt := JobType(s)
	switch jt {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return jt, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// Salary is the advertised pay band of a listing.
type Salary struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Currency string  `json:"currency" yaml:"currency"`
}

// JobRecord is one job listing. It is produced by a listing source and is
// read-only everywhere else.
type JobRecord struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Company     string    `json:"company" yaml:"company"`
	Location    string    `json:"location" yaml:"location"`
	Salary      *Salary   `json:"salary,omitempty" yaml:"salary,omitempty"`
	JobType     JobType   `json:"jobType" yaml:"jobType"`
	PostedDate  time.Time `json:"postedDate" yaml:"postedDate"`
	Description string    `json:"description" yaml:"description"`
	Skills      []string  `json:"skills" yaml:"skills"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
}

// SalaryMax returns the upper bound of the salary, 0 when the job has none.
func (j JobRecord) SalaryMax() float64 {
	if j.Salary == nil {
		return 0
	}
	return j.Salary.Max
}

// SavedJob is a bookmarked listing.
type SavedJob struct {
	JobRecord
	SavedAt time.Time `json:"savedAt"`
}

// SearchEntry is one remembered search.
type SearchEntry struct {
	Query      string    `json:"query"`
	Location   string    `json:"location"`
	SearchedAt time.Time `json:"searchedAt"`
}
