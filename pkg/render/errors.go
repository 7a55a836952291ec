package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// FieldErrors groups the messages reported for one field.
type FieldErrors struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// ErrorMapping splits an ErrorMap into field-level messages, ordered by the
// form's field order, and form-level messages.
type ErrorMapping struct {
	Fields []FieldErrors `json:"fields,omitempty"`
	Form   []string      `json:"form,omitempty"`
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MapErrors orders errs by field. Keys outside the form become form-level
// messages, sorted by key.
func MapErrors(errs model.ErrorMap) ErrorMapping {
	var mapping ErrorMapping
	if len(errs) == 0 {
		return mapping
	}

	known := make(map[string]struct{})
	for _, f := range model.Fields() {
		known[f.Name] = struct{}{}
		if messages := normalizeMessages(errs[f.Name]); len(messages) > 0 {
			mapping.Fields = append(mapping.Fields, FieldErrors{Field: f.Name, Messages: messages})
		}
	}

	var unknown []string
	for key := range errs {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	var form []string
	for _, key := range unknown {
		form = append(form, errs[key]...)
	}
	mapping.Form = normalizeMessages(form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
