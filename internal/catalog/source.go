// Package catalog owns the set of job listings the service searches over.
// Listings come from one or more Sources and are held in memory as an
// immutable snapshot that Refresh swaps out.
package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jobmate/jobboard/internal/model"
)

// Source produces job listings.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.JobRecord, error)
}

// FileSource reads listings from a YAML or JSON file holding a list of
// records. The file is re-read on every Fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(_ context.Context) ([]model.JobRecord, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ParseJobs(b)
}

// ParseJobs decodes a YAML or JSON list of job records. Job types are
// checked; everything else is taken as-is.
func ParseJobs(b []byte) ([]model.JobRecord, error) {
	var jobs []model.JobRecord
	if err := yaml.Unmarshal(b, &jobs); err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}
	for i, j := range jobs {
		if j.ID == "" {
			return nil, fmt.Errorf("job %d: missing id", i)
		}
		if _, err := model.ParseJobType(string(j.JobType)); err != nil {
			return nil, fmt.Errorf("job %s: %w", j.ID, err)
		}
		if jobs[i].Skills == nil {
			jobs[i].Skills = []string{}
		}
	}
	return jobs, nil
}

// StaticSource serves a fixed list. Handy for tests and embedding.
type StaticSource []model.JobRecord

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Fetch(context.Context) ([]model.JobRecord, error) {
	return append([]model.JobRecord(nil), s...), nil
}
