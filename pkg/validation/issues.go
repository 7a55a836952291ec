package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

var (
	// ErrInvalidRule marks failures of the validation machinery itself: an
	// unknown validator tag, a refinement that does not compile or does not
	// yield a bool. These are never attributable to a field.
	ErrInvalidRule = errors.New("validation: invalid rule")
)

// IssueKind separates independent field checks from record-level ones.
type IssueKind string

const (
	IssueKindType       IssueKind = "type"
	IssueKindField      IssueKind = "field"
	IssueKindCrossField IssueKind = "cross_field"
)

// Issue represents a single violated rule with its location metadata.
type Issue struct {
	Path    string    `json:"path,omitempty"`
	Field   string    `json:"field"`
	Kind    IssueKind `json:"kind"`
	Rule    string    `json:"rule,omitempty"`
	Message string    `json:"message"`
}

// ValidationFailure carries every violated rule of one validation pass.
type ValidationFailure struct {
	Fields model.ErrorMap `json:"fields"`
	Issues []Issue        `json:"issues"`
}

func (f *ValidationFailure) Error() string {
	if f == nil || len(f.Issues) == 0 {
		return "validation: failed"
	}
	seen := make(map[string]struct{}, len(f.Issues))
	names := make([]string, 0, len(f.Issues))
	for _, issue := range f.Issues {
		if _, ok := seen[issue.Field]; ok {
			continue
		}
		seen[issue.Field] = struct{}{}
		names = append(names, issue.Field)
	}
	return fmt.Sprintf("validation: %d rule(s) failed on %s", len(f.Issues), strings.Join(names, ", "))
}

// AsFailure unwraps err into a *ValidationFailure.
func AsFailure(err error) (*ValidationFailure, bool) {
	var failure *ValidationFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

type collector struct {
	issues []Issue
	fields model.ErrorMap
}

func newCollector() *collector {
	return &collector{fields: make(model.ErrorMap)}
}

func (c *collector) add(field string, kind IssueKind, rule, message string) {
	c.issues = append(c.issues, Issue{
		Path:    pointerFor(field),
		Field:   field,
		Kind:    kind,
		Rule:    rule,
		Message: message,
	})
	c.fields.Add(field, message)
}

func (c *collector) failure() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationFailure{Fields: c.fields, Issues: c.issues}
}

func pointerFor(field string) string {
	field = strings.ReplaceAll(field, "~", "~0")
	field = strings.ReplaceAll(field, "/", "~1")
	return "/" + field
}
