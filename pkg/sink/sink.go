// Package sink provides receivers for successfully validated submissions.
// Every sink matches the controller's onValid contract and can be passed to
// form.WithOnValid directly.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Func receives the normalized record of a successful submission.
type Func func(ctx context.Context, record model.NormalizedRecord) error

// Log writes the record as structured fields at info level. Secret fields are
// masked in the log entry.
func Log(logger logrus.FieldLogger) Func {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(ctx context.Context, record model.NormalizedRecord) error {
		values := record.Map()
		fields := logrus.Fields{}
		for _, f := range model.Fields() {
			value := values[f.Name]
			if f.Secret {
				value = mask(fmt.Sprint(value))
			}
			fields[f.Name] = value
		}
		if id := form.SubmissionID(ctx); id != "" {
			fields["submission_id"] = id
		}
		logger.WithFields(fields).Info("sink: submission received")
		return nil
	}
}

// Report renders the success report for every submission to out.
func Report(reporter *render.Reporter, out io.Writer) Func {
	return func(ctx context.Context, record model.NormalizedRecord) error {
		if reporter == nil {
			return errors.New("sink: reporter is nil")
		}
		if err := reporter.Success(out, form.SubmissionID(ctx), record); err != nil {
			return fmt.Errorf("sink: report: %w", err)
		}
		return nil
	}
}

// Chain calls sinks in order and stops at the first error.
func Chain(sinks ...Func) Func {
	return func(ctx context.Context, record model.NormalizedRecord) error {
		for i, s := range sinks {
			if s == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s(ctx, record); err != nil {
				return fmt.Errorf("sink %d: %w", i, err)
			}
		}
		return nil
	}
}

func mask(s string) string {
	return strings.Repeat("*", len([]rune(s)))
}
