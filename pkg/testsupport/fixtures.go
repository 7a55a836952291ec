// Package testsupport holds fixtures shared by the package tests.
package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ValidRecord returns raw values that pass every default rule.
func ValidRecord() model.Record {
	return model.Record{
		model.FieldFirstName:       "John",
		model.FieldLastName:        "Doe",
		model.FieldEmail:           "john.doe@example.com",
		model.FieldPassword:        "password",
		model.FieldConfirmPassword: "password",
		model.FieldURL:             "https://Example.com",
		model.FieldAgree:           true,
		model.FieldSelect:          "opcao1",
		model.FieldRole:            model.RoleAdmin,
	}
}

// NormalizedRecord is ValidRecord after the default transform.
func NormalizedRecord() model.NormalizedRecord {
	return model.NormalizedRecord{
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@example.com",
		Password:        "PASSWORD",
		ConfirmPassword: "PASSWORD",
		URL:             "https://example.com",
		Agree:           true,
		Select:          "opcao1",
		Role:            model.RoleAdmin,
	}
}

// With returns ValidRecord with the given overrides applied.
func With(overrides model.Record) model.Record {
	record := ValidRecord()
	for key, value := range overrides {
		record[key] = value
	}
	return record
}

// NullLogger returns a discarding logger at debug level and the hook that
// captures its entries.
func NullLogger(t *testing.T) (*logrus.Logger, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
