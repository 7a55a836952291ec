package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
)

// FieldView is a field with its label resolved for display.
type FieldView struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Secret  bool     `json:"secret,omitempty"`
	Options []string `json:"options,omitempty"`
}

// LocalizeFields resolves every field label through loc. A label that cannot
// be translated falls back to the field name.
func LocalizeFields(loc i18n.Localizer) []FieldView {
	fields := model.Fields()
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldView{
			Name:    f.Name,
			Label:   localizeLabel(loc, f),
			Secret:  f.Secret,
			Options: f.Options,
		})
	}
	return out
}

// LocalizeLabel returns the display label of a single field.
func LocalizeLabel(loc i18n.Localizer, field string) string {
	f, ok := model.Lookup(field)
	if !ok {
		return field
	}
	return localizeLabel(loc, f)
}

func localizeLabel(loc i18n.Localizer, f model.Field) string {
	key := strings.TrimSpace(f.Label)
	if key == "" {
		return f.Name
	}
	onMissing := loc.OnMissing
	loc.OnMissing = func(locale, key string, args []any, err error) string {
		if onMissing != nil {
			if msg := onMissing(locale, key, args, err); msg != key {
				return msg
			}
		}
		return f.Name
	}
	return loc.T(key)
}
