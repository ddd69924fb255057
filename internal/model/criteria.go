package model

import (
	"fmt"
	"time"
)

// DatePosted limits results to listings younger than a fixed age.
type DatePosted string

const (
	DatePostedAny DatePosted = ""
	DatePosted24h DatePosted = "24h"
	DatePosted3d  DatePosted = "3d"
	DatePosted7d  DatePosted = "7d"
	DatePosted30d DatePosted = "30d"
)

// MaxAge returns the bucket threshold. The second value is false for the
// unset bucket.
func (d DatePosted) MaxAge() (time.Duration, bool) {
	switch d {
	case DatePosted24h:
		return 24 * time.Hour, true
	case DatePosted3d:
		return 72 * time.Hour, true
	case DatePosted7d:
		return 168 * time.Hour, true
	case DatePosted30d:
		return 720 * time.Hour, true
	}
	return 0, false
}

// ParseDatePosted accepts the empty string as "no constraint".
func ParseDatePosted(s string) (DatePosted, error) {
	d := DatePosted(s)
	if d == DatePostedAny {
		return d, nil
	}
	if _, ok := d.MaxAge(); !ok {
		return "", fmt.Errorf("unknown datePosted %q", s)
	}
	return d, nil
}

// SalaryRange is one of the fixed salary buckets offered by the filter UI.
type SalaryRange string

const (
	SalaryRangeAny        SalaryRange = ""
	SalaryRange0To2000    SalaryRange = "0-2000"
	SalaryRange2000To4000 SalaryRange = "2000-4000"
	SalaryRange4000To6000 SalaryRange = "4000-6000"
	SalaryRange6000To8000 SalaryRange = "6000-8000"
	SalaryRange8000Plus   SalaryRange = "8000+"
)

type salaryBounds struct {
	min, max float64
	bounded  bool
}

var salaryBuckets = map[SalaryRange]salaryBounds{
	SalaryRange0To2000:    {0, 2000, true},
	SalaryRange2000To4000: {2000, 4000, true},
	SalaryRange4000To6000: {4000, 6000, true},
	SalaryRange6000To8000: {6000, 8000, true},
	SalaryRange8000Plus:   {8000, 0, false},
}

// Bounds returns the inclusive bucket limits. bounded is false for the open
// ended bucket, in which case hi is meaningless. ok is false for the unset
// or an unknown bucket.
func (r SalaryRange) Bounds() (lo, hi float64, bounded, ok bool) {
	b, ok := salaryBuckets[r]
	return b.min, b.max, b.bounded, ok
}

// ParseSalaryRange accepts the empty string as "no constraint".
func ParseSalaryRange(s string) (SalaryRange, error) {
	r := SalaryRange(s)
	if r == SalaryRangeAny {
		return r, nil
	}
	if _, ok := salaryBuckets[r]; !ok {
		return "", fmt.Errorf("unknown salaryRange %q", s)
	}
	return r, nil
}

// FilterCriteria is the set of facet constraints applied to one search.
// Empty slices and zero values mean "no constraint".
type FilterCriteria struct {
	JobTypes    []JobType   `json:"jobTypes,omitempty"`
	Locations   []string    `json:"locations,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	RemoteWork  bool        `json:"remoteWork,omitempty"`
	DatePosted  DatePosted  `json:"datePosted,omitempty"`
	SalaryRange SalaryRange `json:"salaryRange,omitempty"`

	// Collected by the filter panel but not enforced yet.
	Experience  []string `json:"experience,omitempty"`
	CompanySize []string `json:"companySize,omitempty"`
}

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortSalaryHigh SortKey = "salary-high"
	SortSalaryLow  SortKey = "salary-low"
	SortCompany    SortKey = "company"
)

// ParseSortKey never fails: anything unrecognised falls back to relevance.
func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	switch k {
	case SortNewest, SortOldest, SortSalaryHigh, SortSalaryLow, SortCompany:
		return k
	}
	return SortRelevance
}
