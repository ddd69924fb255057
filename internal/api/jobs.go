package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/search"
)

// searchJobs handles GET /jobs. List parameters accept repeated keys and
// comma-separated values. When the caller is identified, non-blank searches
// are recorded in their history.
func (h *Handler) searchJobs(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res := h.matcher.Run(h.catalog.Jobs(), q)

	if user := strings.TrimSpace(c.GetHeader(userIDHeader)); user != "" {
		if err := h.history(user).Record(c.Request.Context(), q.Text, q.Location); err != nil {
			h.log.Warn().Err(err).Str("user", user).Msg("record search history failed")
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) getJob(c *gin.Context) {
	job, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		h.writeError(c, fmt.Errorf("job %q: %w", c.Param("id"), ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, job)
}

func parseQuery(c *gin.Context) (search.Query, error) {
	q := search.Query{
		Text:     c.Query("q"),
		Location: c.Query("location"),
		Sort:     model.ParseSortKey(c.Query("sort")),
	}

	for _, s := range listParam(c, "jobTypes") {
		jt, err := model.ParseJobType(s)
		if err != nil {
			return q, invalid(err.Error())
		}
		q.Criteria.JobTypes = append(q.Criteria.JobTypes, jt)
	}
	q.Criteria.Locations = listParam(c, "locations")
	q.Criteria.Categories = listParam(c, "categories")
	q.Criteria.Experience = listParam(c, "experience")
	q.Criteria.CompanySize = listParam(c, "companySize")

	if s := c.Query("remote"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return q, invalid(fmt.Sprintf("remote must be a boolean, got %q", s))
		}
		q.Criteria.RemoteWork = v
	}

	var err error
	if q.Criteria.DatePosted, err = model.ParseDatePosted(c.Query("datePosted")); err != nil {
		return q, invalid(err.Error())
	}
	if q.Criteria.SalaryRange, err = model.ParseSalaryRange(c.Query("salaryRange")); err != nil {
		return q, invalid(err.Error())
	}
	if q.Page, err = intParam(c, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(c, "pageSize"); err != nil {
		return q, err
	}
	return q, nil
}

func listParam(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// intParam returns 0 for an absent parameter.
func intParam(c *gin.Context, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, invalid(fmt.Sprintf("%s must be a positive integer, got %q", key, s))
	}
	return v, nil
}
