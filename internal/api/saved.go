package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSaved(c *gin.Context) {
	c.JSON(http.StatusOK, h.savedJobs(currentUser(c)).List(c.Request.Context()))
}

// saveJob handles POST /saved-jobs. It answers 201 when the job was added
// and 200 when it was already saved.
func (h *Handler) saveJob(c *gin.Context) {
	var body struct {
		JobID string `json:"jobId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.JobID == "" {
		h.writeError(c, invalid("body must contain jobId"))
		return
	}
	job, ok := h.catalog.Get(body.JobID)
	if !ok {
		h.writeError(c, fmt.Errorf("job %q: %w", body.JobID, ErrNotFound))
		return
	}

	added, err := h.savedJobs(currentUser(c)).Save(c.Request.Context(), job)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"jobId": job.ID, "saved": true})
}

func (h *Handler) toggleSaved(c *gin.Context) {
	ctx := c.Request.Context()
	jobs := h.savedJobs(currentUser(c))
	id := c.Param("id")

	job, ok := h.catalog.Get(id)
	if !ok {
		// A listing that left the catalog can still be unsaved.
		if !jobs.IsSaved(ctx, id) {
			h.writeError(c, fmt.Errorf("job %q: %w", id, ErrNotFound))
			return
		}
		job.ID = id
	}

	now, err := jobs.Toggle(ctx, job)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobId": id, "saved": now})
}

func (h *Handler) unsaveJob(c *gin.Context) {
	if err := h.savedJobs(currentUser(c)).Unsave(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.history(currentUser(c)).List(c.Request.Context()))
}

func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.history(currentUser(c)).Clear(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
