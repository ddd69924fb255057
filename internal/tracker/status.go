// Package tracker implements the application lifecycle: submission, status
// changes, removal and per-status statistics.
//
// Status graph (informational, not enforced by default):
//
//	applied ──► reviewing ──► interviewing ──► offered
//	   │            │               │
//	   └────────────┴───────────────┴──► rejected
//
// Any status may be set to any other by default. StrictTransitions is an
// opt-in policy that enforces the graph above.
package tracker

import (
	"fmt"

	"jobmate/jobboard/internal/model"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []model.ApplicationStatus{
	model.StatusApplied,
	model.StatusReviewing,
	model.StatusInterviewing,
	model.StatusOffered,
	model.StatusRejected,
}

// ParseStatus converts a raw string to a status, returning an error for
// unknown values. Matching is case-sensitive.
func ParseStatus(s string) (model.ApplicationStatus, error) {
	st := model.ApplicationStatus(s)
	switch st {
	case model.StatusApplied, model.StatusReviewing, model.StatusInterviewing,
		model.StatusOffered, model.StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// TransitionPolicy decides whether an application may move from one status
// to another.
type TransitionPolicy func(from, to model.ApplicationStatus) bool

// AnyTransition allows every move, including to the same status.
func AnyTransition(_, _ model.ApplicationStatus) bool { return true }

// strictTransitions lists every allowed (from → to) pair.
var strictTransitions = map[model.ApplicationStatus][]model.ApplicationStatus{
	model.StatusApplied:      {model.StatusReviewing, model.StatusRejected},
	model.StatusReviewing:    {model.StatusInterviewing, model.StatusRejected},
	model.StatusInterviewing: {model.StatusOffered, model.StatusRejected},
	// offered and rejected are terminal
}

// StrictTransitions only allows single forward steps and rejection from a
// non-terminal status.
func StrictTransitions(from, to model.ApplicationStatus) bool {
	allowed, ok := strictTransitions[from]
	if !ok {
		return false // terminal state, no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no strict transition leaves s.
func IsTerminal(s model.ApplicationStatus) bool {
	_, ok := strictTransitions[s]
	return !ok
}
