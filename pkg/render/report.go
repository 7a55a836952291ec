package render

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
)

const (
	// SuccessTemplate renders an accepted submission.
	SuccessTemplate = "report_success"
	// FailureTemplate renders a rejected submission.
	FailureTemplate = "report_failure"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the bundled report templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// ValueView is one submitted value prepared for display.
type ValueView struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Secret bool   `json:"secret,omitempty"`
}

// ErrorView lists the messages of one field under its display label.
type ErrorView struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Messages []string `json:"messages"`
}

// Report is the template payload for both report templates.
type Report struct {
	Locale       string      `json:"locale"`
	OK           bool        `json:"ok"`
	SubmissionID string      `json:"submissionId,omitempty"`
	Values       []ValueView `json:"values,omitempty"`
	Errors       []ErrorView `json:"errors,omitempty"`
	FormErrors   []string    `json:"formErrors,omitempty"`
	Cause        string      `json:"cause,omitempty"`
}

// ReportOption configures a Reporter.
type ReportOption func(*Reporter)

// WithEngine replaces the bundled pongo2 engine. The engine must resolve the
// configured template names and provide a "translate" helper.
func WithEngine(engine template.TemplateRenderer) ReportOption {
	return func(r *Reporter) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithLocalizer sets the translator and locale used for labels and messages.
func WithLocalizer(loc i18n.Localizer) ReportOption {
	return func(r *Reporter) {
		r.loc = loc
	}
}

// WithTemplates overrides the template names. Inline template content is
// accepted as well.
func WithTemplates(success, failure string) ReportOption {
	return func(r *Reporter) {
		if s := strings.TrimSpace(success); s != "" {
			r.success = s
		}
		if f := strings.TrimSpace(failure); f != "" {
			r.failure = f
		}
	}
}

// Reporter renders human readable submission reports.
type Reporter struct {
	engine  template.TemplateRenderer
	loc     i18n.Localizer
	success string
	failure string
}

// NewReporter builds a Reporter. Without WithEngine it renders the bundled
// templates.
func NewReporter(opts ...ReportOption) (*Reporter, error) {
	r := &Reporter{
		loc:     i18n.Localizer{Translator: i18n.Default(), Locale: i18n.DefaultLocale},
		success: SuccessTemplate,
		failure: FailureTemplate,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if strings.TrimSpace(r.loc.Locale) == "" {
		r.loc.Locale = i18n.DefaultLocale
	}

	if r.engine == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithTemplateFunc(LocalizerFuncs(r.loc)),
		)
		if err != nil {
			return nil, fmt.Errorf("render: report engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// SuccessReport builds the payload describing an accepted submission.
func (r *Reporter) SuccessReport(id string, record model.NormalizedRecord) Report {
	values := record.Map()
	report := Report{Locale: r.loc.Locale, OK: true, SubmissionID: id}
	for _, f := range LocalizeFields(r.loc) {
		report.Values = append(report.Values, ValueView{
			Field:  f.Name,
			Label:  f.Label,
			Value:  fmt.Sprint(values[f.Name]),
			Secret: f.Secret,
		})
	}
	return report
}

// FailureReport builds the payload describing a rejected submission. cause is
// set for failures of the validation machinery itself.
func (r *Reporter) FailureReport(errs model.ErrorMap, cause error) Report {
	report := Report{Locale: r.loc.Locale}
	if cause != nil {
		report.Cause = cause.Error()
		return report
	}
	mapping := MapErrors(errs)
	for _, entry := range mapping.Fields {
		report.Errors = append(report.Errors, ErrorView{
			Field:    entry.Field,
			Label:    LocalizeLabel(r.loc, entry.Field),
			Messages: entry.Messages,
		})
	}
	report.FormErrors = mapping.Form
	return report
}

// Success renders the success template to out.
func (r *Reporter) Success(out io.Writer, id string, record model.NormalizedRecord) error {
	return r.render(out, r.success, r.SuccessReport(id, record))
}

// Failure renders the failure template to out.
func (r *Reporter) Failure(out io.Writer, errs model.ErrorMap, cause error) error {
	return r.render(out, r.failure, r.FailureReport(errs, cause))
}

func (r *Reporter) render(out io.Writer, name string, report Report) error {
	if r == nil || r.engine == nil {
		return errors.New("render: reporter is nil")
	}
	var writers []io.Writer
	if out != nil {
		writers = append(writers, out)
	}
	if _, err := r.engine.Render(name, report, writers...); err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	return nil
}
