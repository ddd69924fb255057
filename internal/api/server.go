// Package api exposes the job board over HTTP.
//
// Every route except /health and the job catalog expects an x-user-id
// header forwarded by the gateway; it selects the user's storage namespace.
//
// Routes:
//
//	GET    /health
//	GET    /jobs                            → search, sort and paginate
//	GET    /jobs/:id
//	GET    /saved-jobs
//	POST   /saved-jobs                      → {"jobId": "..."}
//	POST   /saved-jobs/:id/toggle
//	DELETE /saved-jobs/:id
//	GET    /search-history
//	DELETE /search-history
//	GET    /applications                    → ?status= filter
//	POST   /applications
//	GET    /applications/stats
//	GET    /applications/by-job/:jobId
//	GET    /applications/:id
//	POST   /applications/:id/status         → {"status": "..."}
//	DELETE /applications/:id
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/collection"
	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/saved"
	"jobmate/jobboard/internal/search"
	"jobmate/jobboard/internal/storage"
	"jobmate/jobboard/internal/tracker"
)

// Version is reported by /health.
const Version = "1.0.0"

const userIDHeader = "x-user-id"

// JobCatalog is the read side of the catalog.
type JobCatalog interface {
	Jobs() []model.JobRecord
	Get(id string) (model.JobRecord, bool)
}

// Deps are the shared dependencies of every handler.
type Deps struct {
	Catalog JobCatalog
	Medium  storage.SwapMedium
	// Versioned selects compare-and-swap collections over last-writer-wins.
	Versioned      bool
	TrackerOptions []tracker.Option
	Now            func() time.Time
	Log            zerolog.Logger
}

// Handler holds shared dependencies.
type Handler struct {
	catalog   JobCatalog
	medium    storage.SwapMedium
	versioned bool
	trackOpts []tracker.Option
	matcher   *search.Matcher
	now       func() time.Time
	log       zerolog.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(d Deps) *Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		catalog:   d.Catalog,
		medium:    d.Medium,
		versioned: d.Versioned,
		trackOpts: d.TrackerOptions,
		matcher:   &search.Matcher{Now: now},
		now:       now,
		log:       d.Log,
	}
}

// Router builds the gin engine with every route mounted.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts all jobboard routes on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/jobs", h.searchJobs)
	r.GET("/jobs/:id", h.getJob)

	u := r.Group("/", h.requireUser())
	u.GET("/saved-jobs", h.listSaved)
	u.POST("/saved-jobs", h.saveJob)
	u.POST("/saved-jobs/:id/toggle", h.toggleSaved)
	u.DELETE("/saved-jobs/:id", h.unsaveJob)

	u.GET("/search-history", h.listHistory)
	u.DELETE("/search-history", h.clearHistory)

	u.GET("/applications", h.listApplications)
	u.POST("/applications", h.submitApplication)
	u.GET("/applications/stats", h.applicationStats)
	u.GET("/applications/by-job/:jobId", h.applicationByJob)
	u.GET("/applications/:id", h.getApplication)
	u.POST("/applications/:id/status", h.updateStatus)
	u.DELETE("/applications/:id", h.removeApplication)
}

// ─── Middleware ──────────────────────────────────────────────────────────────

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := h.log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = h.log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing x-user-id header"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// ─── Per-user stores ─────────────────────────────────────────────────────────

// userMedium scopes the shared medium to one user.
func (h *Handler) userMedium(userID string) storage.SwapMedium {
	// Prefixed keeps Swap because h.medium has it.
	return storage.Prefixed(h.medium, "user:"+userID+":").(storage.SwapMedium)
}

func newStore[T any](h *Handler, userID, name string, idOf func(T) string) collection.Store[T] {
	m := h.userMedium(userID)
	log := h.log.With().Str("user", userID).Logger()
	if h.versioned {
		return collection.NewVersioned(m, name, idOf, log)
	}
	return collection.New(m, name, idOf, log)
}

func (h *Handler) savedJobs(userID string) *saved.Jobs {
	return saved.NewJobs(newStore(h, userID, collection.SavedJobs, saved.SavedJobID), h.now)
}

func (h *Handler) history(userID string) *saved.History {
	return saved.NewHistory(newStore(h, userID, collection.SearchHistory, saved.SearchEntryID), h.now)
}

func (h *Handler) applications(userID string) *tracker.Tracker {
	store := newStore(h, userID, collection.Applications, tracker.ApplicationID)
	opts := append([]tracker.Option{
		tracker.WithClock(h.now),
		tracker.WithLogger(h.log.With().Str("user", userID).Logger()),
	}, h.trackOpts...)
	return tracker.New(store, opts...)
}

func currentUser(c *gin.Context) string { return c.GetString("userID") }

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "jobboard",
		"version": Version,
		"jobs":    len(h.catalog.Jobs()),
	})
}
