package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/collection"
	"jobmate/jobboard/internal/model"
)

// DefaultSubmitLatency is the delay LocalTransport adds when no transport
// is configured.
const DefaultSubmitLatency = time.Second

// ApplicationID is the id extractor for the job_applications collection.
func ApplicationID(a model.Application) string { return a.ID }

// ─── Tracker ─────────────────────────────────────────────────────────────────

// Tracker encapsulates the application lifecycle on top of a persisted
// collection. It has no dependency on any transport layer.
type Tracker struct {
	store     collection.Store[model.Application]
	transport Transport
	publisher Publisher
	policy    TransitionPolicy
	now       func() time.Time
	newID     func() string
	log       zerolog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTransport replaces the default LocalTransport.
func WithTransport(t Transport) Option { return func(tr *Tracker) { tr.transport = t } }

// WithPublisher enables lifecycle events.
func WithPublisher(p Publisher) Option { return func(tr *Tracker) { tr.publisher = p } }

// WithPolicy replaces AnyTransition, e.g. with StrictTransitions.
func WithPolicy(p TransitionPolicy) Option { return func(tr *Tracker) { tr.policy = p } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(tr *Tracker) { tr.now = now } }

// WithIDGenerator overrides the uuid generator.
func WithIDGenerator(f func() string) Option { return func(tr *Tracker) { tr.newID = f } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(tr *Tracker) { tr.log = l } }

// New returns a Tracker over store.
func New(store collection.Store[model.Application], opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		transport: LocalTransport{Latency: DefaultSubmitLatency},
		policy:    AnyTransition,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

// Submit validates data, hands the new application to the transport and
// appends it to the collection. It blocks for the transport's duration and
// honours ctx cancellation.
func (t *Tracker) Submit(ctx context.Context, data model.ApplicationData) (*model.Application, error) {
	data.FullName = strings.TrimSpace(data.FullName)
	data.Email = strings.TrimSpace(data.Email)
	data.Phone = strings.TrimSpace(data.Phone)

	if err := ValidateApplication(data); err != nil {
		return nil, err
	}

	app := model.Application{
		ID:          t.newID(),
		JobID:       data.JobID,
		JobTitle:    data.JobTitle,
		Company:     data.Company,
		FullName:    data.FullName,
		Email:       data.Email,
		Phone:       data.Phone,
		CoverLetter: data.CoverLetter,
		Resume:      data.Resume,
		AppliedDate: t.now().UTC(),
		Status:      model.StatusApplied,
	}

	if err := t.transport.Deliver(ctx, app); err != nil {
		return nil, fmt.Errorf("deliver application: %w", err)
	}

	err := t.store.Update(ctx, func(items []model.Application) ([]model.Application, error) {
		return append(items, app), nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	t.log.Info().Str("applicationId", app.ID).Str("jobId", app.JobID).Msg("application submitted")
	t.publish(ctx, EventSubmitted, map[string]string{
		"type":          EventSubmitted,
		"applicationId": app.ID,
		"jobId":         app.JobID,
	})
	return &app, nil
}

// UpdateStatus overwrites the status of an application. Unknown ids are a
// no-op; unknown statuses and moves refused by the policy return a
// *ValidationError.
func (t *Tracker) UpdateStatus(ctx context.Context, appID string, newStatus model.ApplicationStatus) error {
	if _, err := ParseStatus(string(newStatus)); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if _, ok := t.store.Get(ctx, appID); !ok {
		return nil
	}

	var from model.ApplicationStatus
	changed := false
	err := t.store.Update(ctx, func(items []model.Application) ([]model.Application, error) {
		i := slices.IndexFunc(items, func(a model.Application) bool { return a.ID == appID })
		if i < 0 {
			changed = false
			return items, nil
		}
		from = items[i].Status
		if !t.policy(from, newStatus) {
			return nil, &ValidationError{
				Msg: fmt.Sprintf("transition %s → %s is not allowed", from, newStatus),
			}
		}
		items[i].Status = newStatus
		changed = true
		return items, nil
	})
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	t.log.Info().Str("applicationId", appID).
		Str("from", string(from)).Str("to", string(newStatus)).
		Msg("application status changed")
	t.publish(ctx, EventMoved, map[string]string{
		"type":          EventMoved,
		"applicationId": appID,
		"from":          string(from),
		"to":            string(newStatus),
	})
	return nil
}

// Remove deletes an application. Unknown ids are a no-op.
func (t *Tracker) Remove(ctx context.Context, appID string) error {
	if _, ok := t.store.Get(ctx, appID); !ok {
		return nil
	}
	err := t.store.Update(ctx, func(items []model.Application) ([]model.Application, error) {
		return slices.DeleteFunc(items, func(a model.Application) bool { return a.ID == appID }), nil
	})
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	t.publish(ctx, EventRemoved, map[string]string{
		"type":          EventRemoved,
		"applicationId": appID,
	})
	return nil
}

// ─── Queries ─────────────────────────────────────────────────────────────────

// Get returns an application by id.
func (t *Tracker) Get(ctx context.Context, appID string) (model.Application, bool) {
	return t.store.Get(ctx, appID)
}

// GetByJobID returns the first application made for jobID.
func (t *Tracker) GetByJobID(ctx context.Context, jobID string) (model.Application, bool) {
	for _, a := range t.store.All(ctx) {
		if a.JobID == jobID {
			return a, true
		}
	}
	return model.Application{}, false
}

// List returns all applications in submission order. A non-empty status
// keeps only applications with that status.
func (t *Tracker) List(ctx context.Context, status model.ApplicationStatus) []model.Application {
	apps := t.store.All(ctx)
	if status == "" {
		return apps
	}
	return slices.DeleteFunc(apps, func(a model.Application) bool { return a.Status != status })
}

// Stats counts the current applications per status. It is recomputed from
// the collection on every call. Records with an unknown status are logged
// and left out, so Total is always the sum of the buckets.
func (t *Tracker) Stats(ctx context.Context) model.ApplicationStats {
	var s model.ApplicationStats
	for _, a := range t.store.All(ctx) {
		if !slices.Contains(AllStatuses, a.Status) {
			t.log.Warn().Str("applicationId", a.ID).Str("status", string(a.Status)).
				Msg("skipping application with unknown status")
			continue
		}
		s.Total++
		switch a.Status {
		case model.StatusApplied:
			s.Applied++
		case model.StatusReviewing:
			s.Reviewing++
		case model.StatusInterviewing:
			s.Interviewing++
		case model.StatusOffered:
			s.Offered++
		case model.StatusRejected:
			s.Rejected++
		}
	}
	return s
}

// publish is best effort: failures are logged and swallowed.
func (t *Tracker) publish(ctx context.Context, channel string, event map[string]string) {
	if t.publisher == nil {
		return
	}
	payload, _ := json.Marshal(event)
	if err := t.publisher.Publish(ctx, channel, payload); err != nil {
		t.log.Warn().Err(err).Str("channel", channel).Msg("publish failed")
	}
}
