package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Renderer drives a form.Controller from terminal prompts. Every answer goes
// through SetFieldValue so messages appear as soon as a field is left, and a
// failed submit re-prompts only the fields that still carry errors.
type Renderer struct {
	driver      PromptDriver
	loc         i18n.Localizer
	theme       Theme
	maxAttempts int
}

// New constructs a TUI renderer with defaults (survey driver, pt-BR catalog,
// coloured output, three attempts).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		loc:         i18n.Localizer{Translator: i18n.Default(), Locale: i18n.DefaultLocale},
		theme:       DefaultTheme(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Run prompts every field, then submits. While the submit is rejected the
// failing fields are asked again, up to the configured attempts. The returned
// Result is the last submit outcome; the error is ErrAborted on Ctrl+C,
// ErrAttemptsExhausted when the form never validated, or Result.Err.
func (r *Renderer) Run(ctx context.Context, ctrl *form.Controller) (form.Result, error) {
	if ctx == nil {
		return form.Result{}, errors.New("tui: context is required")
	}
	if ctrl == nil {
		return form.Result{}, errors.New("tui: controller is required")
	}
	if r.driver == nil {
		return form.Result{}, errors.New("tui: prompt driver is nil")
	}

	pending := model.Fields()
	var result form.Result
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, ctrl, field); err != nil {
				return result, err
			}
		}

		result = ctrl.Submit(ctx)
		switch {
		case result.OK:
			_ = r.driver.Info(ctx, r.theme.successLine(r.loc.T("ui.submitted")))
			return result, result.Err
		case result.Err != nil:
			_ = r.driver.Info(ctx, r.theme.errorLine(r.loc.T("ui.unexpected")))
			return result, result.Err
		}

		pending = failingFields(result.Errors)
		_ = r.driver.Info(ctx, r.theme.noticeLine(r.loc.T("ui.invalid")))
		for _, field := range pending {
			r.printErrors(ctx, result.Errors[field.Name])
		}
		if attempt < r.maxAttempts {
			_ = r.driver.Info(ctx, r.theme.noticeLine(r.loc.T("ui.retry")))
		}
	}
	return result, fmt.Errorf("%w after %d", ErrAttemptsExhausted, r.maxAttempts)
}

func (r *Renderer) promptField(ctx context.Context, ctrl *form.Controller, field model.Field) error {
	label := render.LocalizeLabel(r.loc, field.Name)
	current, _ := ctrl.Value(field.Name)

	var value any
	switch {
	case field.Type == model.FieldTypeBoolean:
		def, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def})
		if err != nil {
			return err
		}
		value = answer
	case field.Type == model.FieldTypeEnum:
		def, _ := current.(string)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, def),
		})
		if err != nil {
			return err
		}
		value = ""
		if idx >= 0 && idx < len(field.Options) {
			value = field.Options[idx]
		}
	case field.Secret:
		def, _ := current.(string)
		answer, err := r.driver.Password(ctx, InputConfig{Message: label, Default: def})
		if err != nil {
			return err
		}
		value = answer
	default:
		def, _ := current.(string)
		answer, err := r.driver.Input(ctx, InputConfig{Message: label, Default: def})
		if err != nil {
			return err
		}
		value = strings.TrimRight(answer, "\r\n")
	}

	if err := ctrl.SetFieldValue(field.Name, value); err != nil {
		return err
	}
	r.printErrors(ctx, ctrl.ErrorsFor(field.Name))
	return nil
}

func (r *Renderer) printErrors(ctx context.Context, messages []string) {
	for _, msg := range messages {
		_ = r.driver.Info(ctx, r.theme.errorLine(msg))
	}
}

func failingFields(errs model.ErrorMap) []model.Field {
	var out []model.Field
	for _, f := range model.Fields() {
		if len(errs[f.Name]) > 0 {
			out = append(out, f)
		}
	}
	return out
}
