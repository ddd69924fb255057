package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmate/jobboard/internal/tracker"
)

// ErrNotFound is reported for unknown jobs and applications.
var ErrNotFound = errors.New("not found")

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, tracker.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	var ve *tracker.ValidationError
	if errors.As(err, &ve) {
		body := gin.H{"error": ve.Msg}
		if len(ve.Fields) > 0 {
			body["fields"] = ve.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func invalid(msg string) error {
	return &tracker.ValidationError{Msg: msg}
}
