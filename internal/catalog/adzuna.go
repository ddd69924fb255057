package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/model"
)

const (
	AdzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 50
	adzunaMaxPages = 3 // at most 150 listings per (what × where) pair
	httpTimeout    = 15 * time.Second
)

// AdzunaSource fetches listings from the Adzuna public API for every
// (what × where) pair. Without credentials Fetch returns (nil, nil) and
// logs a warning.
type AdzunaSource struct {
	AppID   string
	AppKey  string
	Country string // "fr", "gb", "us", …
	What    []string
	Where   []string
	BaseURL string

	client *http.Client
	log    zerolog.Logger
}

// NewAdzunaSource constructs a source with its own HTTP client.
func NewAdzunaSource(appID, appKey, country string, what, where []string, log zerolog.Logger) *AdzunaSource {
	return &AdzunaSource{
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		What:    what,
		Where:   where,
		BaseURL: AdzunaBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
		log:     log,
	}
}

func (s *AdzunaSource) Name() string { return "adzuna:" + s.Country }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	Created      string  `json:"created"`
	ContractTime string  `json:"contract_time"`
	ContractType string  `json:"contract_type"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
}

// Fetch walks every pair. A failing pair is logged and skipped; Fetch only
// fails when every pair failed.
func (s *AdzunaSource) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	if s.AppID == "" || s.AppKey == "" {
		s.log.Warn().Msg("ADZUNA_APP_ID / ADZUNA_APP_KEY not set, skipping")
		return nil, nil
	}

	what := orBlank(s.What)
	where := orBlank(s.Where)

	var (
		jobs    []model.JobRecord
		lastErr error
		failed  int
	)
	for _, w := range what {
		for _, l := range where {
			batch, err := s.fetchPair(ctx, w, l)
			if err != nil {
				s.log.Warn().Err(err).Str("what", w).Str("where", l).Msg("adzuna fetch failed, continuing")
				lastErr = err
				failed++
				continue
			}
			jobs = append(jobs, batch...)
		}
	}
	if failed == len(what)*len(where) {
		return nil, lastErr
	}
	return jobs, nil
}

func (s *AdzunaSource) fetchPair(ctx context.Context, what, where string) ([]model.JobRecord, error) {
	var jobs []model.JobRecord
	for page := 1; page <= adzunaMaxPages; page++ {
		batch, err := s.fetchPage(ctx, what, where, page)
		if err != nil {
			return jobs, fmt.Errorf("page %d: %w", page, err)
		}
		jobs = append(jobs, batch...)
		if len(batch) < adzunaPageSize {
			break
		}
	}
	return jobs, nil
}

func (s *AdzunaSource) fetchPage(ctx context.Context, what, where string, page int) ([]model.JobRecord, error) {
	params := url.Values{}
	params.Set("app_id", s.AppID)
	params.Set("app_key", s.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	if what != "" {
		params.Set("what", what)
	}
	if where != "" {
		params.Set("where", where)
	}
	params.Set("sort_by", "date")

	reqURL := fmt.Sprintf("%s/%s/search/%d?%s", s.BaseURL, s.Country, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := make([]model.JobRecord, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		jobs = append(jobs, s.toJobRecord(r))
	}
	return jobs, nil
}

func (s *AdzunaSource) toJobRecord(r adzunaResult) model.JobRecord {
	job := model.JobRecord{
		ID:          "adzuna:" + r.ID,
		Title:       r.Title,
		Company:     r.Company.DisplayName,
		Location:    r.Location.DisplayName,
		JobType:     adzunaJobType(r),
		Description: r.Description,
		Skills:      []string{},
		Category:    r.Category.Label,
	}
	if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
		job.PostedDate = t.UTC()
	}
	if r.SalaryMax > 0 || r.SalaryMin > 0 {
		hi := r.SalaryMax
		if hi == 0 {
			hi = r.SalaryMin
		}
		job.Salary = &model.Salary{Min: r.SalaryMin, Max: hi, Currency: currencyFor(s.Country)}
	}
	return job
}

// adzunaJobType maps Adzuna's contract fields onto the five job types.
// Adzuna has no remote flag, so remote listings are recognised by title.
func adzunaJobType(r adzunaResult) model.JobType {
	title := strings.ToLower(r.Title)
	switch {
	case strings.Contains(title, "remote"):
		return model.JobTypeRemote
	case strings.Contains(title, "intern"):
		return model.JobTypeInternship
	case r.ContractType == "contract":
		return model.JobTypeContract
	case r.ContractTime == "part_time":
		return model.JobTypePartTime
	}
	return model.JobTypeFullTime
}

func currencyFor(country string) string {
	switch strings.ToLower(country) {
	case "gb":
		return "GBP"
	case "us":
		return "USD"
	case "ca":
		return "CAD"
	case "au":
		return "AUD"
	case "in":
		return "INR"
	case "pl":
		return "PLN"
	case "ch":
		return "CHF"
	case "br":
		return "BRL"
	}
	return "EUR"
}

func orBlank(s []string) []string {
	if len(s) == 0 {
		return []string{""}
	}
	return s
}
