package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Mode selects when the controller re-runs validation.
type Mode string

// Criteria selects how many violations are kept per field.
type Criteria string

const (
	// ModeOnChange validates after every SetFieldValue call.
	ModeOnChange Mode = "onChange"
	// CriteriaAll keeps every violated rule for a field.
	CriteriaAll Criteria = "all"
)

var (
	// ErrUnknownField is returned when a collaborator names a field outside the
	// fixed field set.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnexpectedValidator wraps failures of the validation machinery. They
	// are logged and never update the error map.
	ErrUnexpectedValidator = errors.New("form: unexpected validator error")
)

// SubmitHandler receives the normalized record of a successful submission.
type SubmitHandler func(ctx context.Context, record model.NormalizedRecord) error

// Result describes the outcome of one Submit call. OK reports that every rule
// passed; Err carries an unexpected validator failure or the submit handler
// error and is independent of OK.
type Result struct {
	OK           bool
	Record       model.NormalizedRecord
	SubmissionID string
	Errors       model.ErrorMap
	Err          error
}

// Controller holds the record under edit and its error map, re-validating on
// every change. It is meant to be driven from a single event loop and is not
// safe for concurrent use.
type Controller struct {
	schema   *validation.Schema
	state    *State
	defaults model.Record
	onValid  SubmitHandler
	logger   logrus.FieldLogger
	newID    func() string

	mode        Mode
	criteria    Criteria
	validated   bool
	submissions int
}

// Option configures a Controller.
type Option func(*Controller)

// WithSchema overrides the validation schema.
func WithSchema(schema *validation.Schema) Option {
	return func(c *Controller) {
		if schema != nil {
			c.schema = schema
		}
	}
}

// WithOnValid registers the sink invoked once per successful submission.
func WithOnValid(fn func(ctx context.Context, record model.NormalizedRecord) error) Option {
	return func(c *Controller) {
		c.onValid = fn
	}
}

// WithLogger sets the logger used for validation and submission events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaults overrides the mount-time values. Keys outside the field set are
// ignored.
func WithDefaults(values model.Record) Option {
	return func(c *Controller) {
		defaults := model.Defaults()
		for key, value := range values {
			if _, ok := model.Lookup(key); ok {
				defaults[key] = value
			}
		}
		c.defaults = defaults
	}
}

// WithIDGenerator overrides the submission id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New mounts a controller with default values and an empty error map.
func New(options ...Option) (*Controller, error) {
	c := &Controller{
		defaults: model.Defaults(),
		newID:    uuid.NewString,
		mode:     ModeOnChange,
		criteria: CriteriaAll,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.schema == nil {
		schema, err := validation.New()
		if err != nil {
			return nil, fmt.Errorf("form: default schema: %w", err)
		}
		c.schema = schema
	}
	if c.logger == nil {
		c.logger = logrus.New()
	}
	c.onValid = defaultHandler(c.onValid, c.logger)

	c.state = NewState(c.defaults, nil)
	return c, nil
}

// Mode reports the revalidation mode.
func (c *Controller) Mode() Mode { return c.mode }

// Criteria reports how violations are collected per field.
func (c *Controller) Criteria() Criteria { return c.criteria }

// Values returns a copy of the current values.
func (c *Controller) Values() model.Record { return c.state.Values() }

// Value returns the current value of field.
func (c *Controller) Value(field string) (any, bool) { return c.state.GetValue(field) }

// Errors returns a copy of the current error map.
func (c *Controller) Errors() model.ErrorMap { return c.state.Errors() }

// ErrorsFor returns the current messages for field.
func (c *Controller) ErrorsFor(field string) []string { return c.state.ErrorsFor(field) }

// Validated reports whether at least one validation pass has run since mount
// or the last Reset.
func (c *Controller) Validated() bool { return c.validated }

// Submissions counts successful submissions since mount or the last Reset.
func (c *Controller) Submissions() int { return c.submissions }

// Valid reports whether the current values pass every rule. It does not touch
// the error map.
func (c *Controller) Valid() bool {
	_, err := c.run()
	return err == nil
}

// SetFieldValue stores value and re-runs the full schema. Rule violations land
// in the error map; only an unknown field name is returned as an error.
func (c *Controller) SetFieldValue(field string, value any) error {
	field = strings.TrimSpace(field)
	if _, ok := model.Lookup(field); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	c.state.SetValue(field, value)
	c.revalidate(field)
	return nil
}

// Submit validates the complete record. On success the normalized record is
// handed to the submit handler exactly once; on failure the error map is
// updated and the handler is not called. Nothing escapes as a panic.
func (c *Controller) Submit(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	record, err := c.run()
	if err != nil {
		if failure, ok := validation.AsFailure(err); ok {
			c.validated = true
			c.state.SetErrors(failure.Fields)
			c.logger.WithFields(logrus.Fields{
				"fields": fieldNames(failure.Fields),
				"issues": len(failure.Issues),
			}).Debug("form: submit blocked by validation")
			return Result{Errors: c.state.Errors()}
		}

		c.logger.WithError(err).Error("form: submit aborted")
		return Result{
			Errors: c.state.Errors(),
			Err:    fmt.Errorf("%w: %v", ErrUnexpectedValidator, err),
		}
	}

	c.validated = true
	c.state.SetErrors(nil)
	c.submissions++

	result := Result{
		OK:           true,
		Record:       record,
		SubmissionID: c.newID(),
		Errors:       model.ErrorMap{},
	}
	if err := c.deliver(ctx, result.SubmissionID, record); err != nil {
		c.logger.WithError(err).WithField("submission_id", result.SubmissionID).Error("form: submit handler failed")
		result.Err = err
	}
	return result
}

// Reset restores the default values and clears the error map.
func (c *Controller) Reset() {
	c.state = NewState(c.defaults, nil)
	c.validated = false
	c.submissions = 0
}

func (c *Controller) revalidate(changed string) {
	_, err := c.run()
	switch {
	case err == nil:
		c.validated = true
		c.state.SetErrors(nil)
	default:
		failure, ok := validation.AsFailure(err)
		if !ok {
			c.logger.WithError(err).WithField("field", changed).Error("form: revalidation aborted")
			return
		}
		c.validated = true
		c.state.SetErrors(failure.Fields)
	}
	c.logger.WithFields(logrus.Fields{
		"field":  changed,
		"errors": fieldNames(c.state.errors),
	}).Debug("form: revalidated")
}

// run validates the current values, converting a panic inside the validation
// machinery into an error.
func (c *Controller) run() (record model.NormalizedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return c.schema.Validate(c.state.Values())
}

func (c *Controller) deliver(ctx context.Context, id string, record model.NormalizedRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("form: submit handler panic: %v", r)
		}
	}()
	ctx = WithSubmissionID(ctx, id)
	if err := c.onValid(ctx, record); err != nil {
		return fmt.Errorf("form: submit handler: %w", err)
	}
	return nil
}

func defaultHandler(fn SubmitHandler, logger logrus.FieldLogger) SubmitHandler {
	if fn != nil {
		return fn
	}
	return func(ctx context.Context, record model.NormalizedRecord) error {
		logger.WithFields(logrus.Fields{
			"submission_id": SubmissionID(ctx),
			"email":         record.Email,
			"role":          record.Role,
		}).Info("form: submitted")
		return nil
	}
}

func fieldNames(errs model.ErrorMap) []string {
	out := make([]string, 0, len(errs))
	for _, f := range model.Fields() {
		if _, ok := errs[f.Name]; ok {
			out = append(out, f.Name)
		}
	}
	return out
}
