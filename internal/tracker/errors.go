package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by lookups that the caller asked to be strict
// about. The lifecycle operations themselves treat unknown ids as no-ops.
var ErrNotFound = errors.New("application not found")

// ValidationError carries a user-facing message and, for submissions, one
// message per offending field.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return e.Msg + " (" + strings.Join(parts, "; ") + ")"
}
