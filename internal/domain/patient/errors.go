package patient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("patient not found")
	ErrDuplicateDocument = errors.New("a patient with that document type and number already exists")
)

// ValidationError lists the failed constraints keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// PatchError reports a patch operation that cannot be applied at all.
type PatchError struct {
	Index  int
	Op     string
	Path   string
	Reason string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch operation %d (%s %s): %s", e.Index, e.Op, e.Path, e.Reason)
}
