package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/tracker"
)

func (h *Handler) listApplications(c *gin.Context) {
	var status model.ApplicationStatus
	if s := c.Query("status"); s != "" {
		st, err := tracker.ParseStatus(s)
		if err != nil {
			h.writeError(c, invalid(err.Error()))
			return
		}
		status = st
	}
	c.JSON(http.StatusOK, h.applications(currentUser(c)).List(c.Request.Context(), status))
}

// submitApplication handles POST /applications. Job title and company are
// filled from the catalog when the client leaves them out.
func (h *Handler) submitApplication(c *gin.Context) {
	var data model.ApplicationData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.writeError(c, invalid("malformed application body"))
		return
	}
	if job, ok := h.catalog.Get(data.JobID); ok {
		if data.JobTitle == "" {
			data.JobTitle = job.Title
		}
		if data.Company == "" {
			data.Company = job.Company
		}
	}

	app, err := h.applications(currentUser(c)).Submit(c.Request.Context(), data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *Handler) applicationStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.applications(currentUser(c)).Stats(c.Request.Context()))
}

func (h *Handler) applicationByJob(c *gin.Context) {
	jobID := c.Param("jobId")
	app, ok := h.applications(currentUser(c)).GetByJobID(c.Request.Context(), jobID)
	if !ok {
		h.writeError(c, fmt.Errorf("job %q: %w", jobID, tracker.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) getApplication(c *gin.Context) {
	id := c.Param("id")
	app, ok := h.applications(currentUser(c)).Get(c.Request.Context(), id)
	if !ok {
		h.writeError(c, fmt.Errorf("%q: %w", id, tracker.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, app)
}

// updateStatus handles POST /applications/:id/status. Unknown ids are
// reported as 404 here even though the tracker treats them as a no-op.
func (h *Handler) updateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		h.writeError(c, invalid("body must contain status"))
		return
	}

	ctx := c.Request.Context()
	t := h.applications(currentUser(c))
	id := c.Param("id")
	if _, ok := t.Get(ctx, id); !ok {
		h.writeError(c, fmt.Errorf("%q: %w", id, tracker.ErrNotFound))
		return
	}

	if err := t.UpdateStatus(ctx, id, model.ApplicationStatus(body.Status)); err != nil {
		h.writeError(c, err)
		return
	}
	app, _ := t.Get(ctx, id)
	c.JSON(http.StatusOK, app)
}

func (h *Handler) removeApplication(c *gin.Context) {
	if err := h.applications(currentUser(c)).Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
