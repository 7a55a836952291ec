package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/refinement"
	refinementexpr "github.com/goliatone/go-formkit/pkg/refinement/expr"
)

// FieldRule is an independent check on one field's raw value. Tag uses the
// go-playground/validator syntax; an empty Tag only asserts the value kind.
type FieldRule struct {
	Field   string          `json:"field"`
	Kind    model.FieldType `json:"kind"`
	Tag     string          `json:"tag,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Refinement is a record-level rule evaluated after every FieldRule. Its
// failure is reported on Target, which need not be a field the rule reads.
type Refinement struct {
	Target  string `json:"target"`
	Expr    string `json:"expr"`
	Message string `json:"message"`
}

// TransformFunc maps a record that passed every rule into its normalized form.
type TransformFunc func(model.Record) model.NormalizedRecord

// Schema evaluates field rules, then refinements, then the transform.
type Schema struct {
	rules       []FieldRule
	refinements []Refinement
	transform   TransformFunc

	validate   *validator.Validate
	evaluator  refinement.Evaluator
	extras     map[string]any
	translator i18n.Translator
	locale     string
	onMissing  i18n.MissingTranslationHandler
}

// Option configures a Schema.
type Option func(*Schema)

// WithRules replaces the field rules.
func WithRules(rules ...FieldRule) Option {
	return func(s *Schema) {
		s.rules = append([]FieldRule(nil), rules...)
	}
}

// WithRefinements replaces the cross-field refinements.
func WithRefinements(refinements ...Refinement) Option {
	return func(s *Schema) {
		s.refinements = append([]Refinement(nil), refinements...)
	}
}

// WithEvaluator swaps the refinement evaluator.
func WithEvaluator(evaluator refinement.Evaluator) Option {
	return func(s *Schema) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithExtras exposes values outside the record to refinements.
func WithExtras(extras map[string]any) Option {
	return func(s *Schema) {
		s.extras = extras
	}
}

// WithTranslator sets the translator used to resolve rule messages.
func WithTranslator(t i18n.Translator) Option {
	return func(s *Schema) {
		s.translator = t
	}
}

// WithLocale sets the display language of rule messages.
func WithLocale(locale string) Option {
	return func(s *Schema) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			s.locale = trimmed
		}
	}
}

// WithMissingTranslation routes unresolved message keys.
func WithMissingTranslation(fn i18n.MissingTranslationHandler) Option {
	return func(s *Schema) {
		s.onMissing = fn
	}
}

// DefaultRules returns the per-field rules of the sign-up form.
func DefaultRules() []FieldRule {
	return []FieldRule{
		{Field: model.FieldFirstName, Kind: model.FieldTypeString, Tag: "min=3", Message: "firstName.min"},
		{Field: model.FieldLastName, Kind: model.FieldTypeString, Tag: "min=3", Message: "lastName.min"},
		{Field: model.FieldEmail, Kind: model.FieldTypeString, Tag: "required", Message: "email.required"},
		{Field: model.FieldEmail, Kind: model.FieldTypeString, Tag: "omitempty,email", Message: "email.format"},
		{Field: model.FieldPassword, Kind: model.FieldTypeString, Tag: "min=6", Message: "password.min"},
		{Field: model.FieldConfirmPassword, Kind: model.FieldTypeString},
		{Field: model.FieldURL, Kind: model.FieldTypeString, Tag: "url", Message: "url.format"},
		{Field: model.FieldAgree, Kind: model.FieldTypeBoolean},
		{Field: model.FieldSelect, Kind: model.FieldTypeEnum, Tag: "omitempty,oneof=" + strings.Join(model.SelectOptions, " "), Message: "select.enum"},
		{Field: model.FieldRole, Kind: model.FieldTypeEnum, Tag: "oneof=" + strings.Join(model.Roles, " "), Message: "role.enum"},
	}
}

// DefaultRefinements returns the cross-field rules of the sign-up form.
func DefaultRefinements() []Refinement {
	return []Refinement{
		{Target: model.FieldAgree, Expr: "agree == true", Message: "agree.required"},
		{Target: model.FieldConfirmPassword, Expr: "password == confirmPassword", Message: "confirmPassword.match"},
		{Target: model.FieldSelect, Expr: `select != ""`, Message: "select.required"},
	}
}

// New builds a schema. Without options it validates the sign-up form with the
// bundled catalogs in i18n.DefaultLocale.
func New(options ...Option) (*Schema, error) {
	s := &Schema{
		rules:       DefaultRules(),
		refinements: DefaultRefinements(),
		transform:   Normalize,
		validate:    validator.New(),
		evaluator:   refinementexpr.New(),
		locale:      i18n.DefaultLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.translator == nil {
		s.translator = i18n.Default()
	}

	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is New for statically known configurations.
func MustNew(options ...Option) *Schema {
	s, err := New(options...)
	if err != nil {
		panic(err)
	}
	return s
}

type compiler interface {
	Compile(rule string) error
}

func (s *Schema) check() error {
	for _, rule := range s.rules {
		if strings.TrimSpace(rule.Field) == "" {
			return fmt.Errorf("%w: field rule without field", ErrInvalidRule)
		}
	}
	c, canCompile := s.evaluator.(compiler)
	for _, ref := range s.refinements {
		if strings.TrimSpace(ref.Target) == "" {
			return fmt.Errorf("%w: refinement %q without target", ErrInvalidRule, ref.Expr)
		}
		if canCompile {
			if err := c.Compile(ref.Expr); err != nil {
				return fmt.Errorf("%w: refinement %q: %v", ErrInvalidRule, ref.Expr, err)
			}
		}
	}
	return nil
}

// Rules returns a copy of the field rules.
func (s *Schema) Rules() []FieldRule {
	return append([]FieldRule(nil), s.rules...)
}

// Refinements returns a copy of the cross-field rules.
func (s *Schema) Refinements() []Refinement {
	return append([]Refinement(nil), s.refinements...)
}

// Locale reports the display language of rule messages.
func (s *Schema) Locale() string {
	return s.locale
}

// Validate runs every rule against record. It returns a *ValidationFailure
// listing all violations, an ErrInvalidRule wrapped error when the machinery
// itself fails, or the normalized record.
func (s *Schema) Validate(record model.Record) (model.NormalizedRecord, error) {
	if err := s.evaluate(record); err != nil {
		return model.NormalizedRecord{}, err
	}
	return s.transform(record), nil
}

// Check is Validate without the transform.
func (s *Schema) Check(record model.Record) error {
	return s.evaluate(record)
}

func (s *Schema) evaluate(record model.Record) error {
	out := newCollector()
	mistyped := make(map[string]bool)
	checked := make(map[string]bool)
	resolved := record.Clone()

	for _, rule := range s.rules {
		if mistyped[rule.Field] {
			continue
		}
		value, ok := valueOf(record, rule.Field, rule.Kind)
		if !checked[rule.Field] {
			checked[rule.Field] = true
			// refinements see the kind's zero value for a mistyped field
			resolved[rule.Field] = value
			if !ok {
				mistyped[rule.Field] = true
				out.add(rule.Field, IssueKindType, "type", s.message("rule.type"))
				continue
			}
		}
		if strings.TrimSpace(rule.Tag) == "" {
			continue
		}

		violated, err := s.checkTag(value, rule.Tag)
		if err != nil {
			return fmt.Errorf("%w: field %s tag %q: %v", ErrInvalidRule, rule.Field, rule.Tag, err)
		}
		if violated {
			out.add(rule.Field, IssueKindField, rule.Tag, s.message(rule.Message))
		}
	}

	ctx := refinement.Context{Values: map[string]any(resolved), Extras: s.extras}
	for _, ref := range s.refinements {
		ok, err := s.evaluator.Eval(ref.Target, ref.Expr, ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		if !ok {
			out.add(ref.Target, IssueKindCrossField, ref.Expr, s.message(ref.Message))
		}
	}

	return out.failure()
}

func (s *Schema) checkTag(value any, tag string) (violated bool, err error) {
	defer func() {
		// validator panics on unknown tags
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	verr := s.validate.Var(value, tag)
	if verr == nil {
		return false, nil
	}
	var failed validator.ValidationErrors
	if errors.As(verr, &failed) {
		return true, nil
	}
	return false, verr
}

func (s *Schema) message(key string) string {
	if strings.TrimSpace(key) == "" {
		key = "rule.invalid"
	}
	return i18n.Translate(s.translator, s.locale, key, s.onMissing)
}

// valueOf resolves the field value, substituting the kind's zero value for a
// missing or nil entry. ok is false when the stored value has the wrong kind.
func valueOf(record model.Record, field string, kind model.FieldType) (any, bool) {
	raw, present := record[field]
	switch kind {
	case model.FieldTypeBoolean:
		if !present || raw == nil {
			return false, true
		}
		v, ok := raw.(bool)
		return v, ok
	default:
		if !present || raw == nil {
			return "", true
		}
		v, ok := raw.(string)
		return v, ok
	}
}
