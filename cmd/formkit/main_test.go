package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validYAML = `
firstName: John
lastName: Doe
email: john.doe@example.com
password: password
confirmPassword: password
url: https://Example.com
agree: true
select: opcao1
role: admin
`

func TestRun_InputValid(t *testing.T) {
	input := writeFile(t, "record.yaml", validYAML)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-input", input, "-locale", "en", "-log-format", "json"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"Form submitted successfully", "Website: https://example.com", "Password: ********"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), `"msg":"sink: submission received"`) {
		t.Fatalf("expected structured sink log, got:\n%s", stderr.String())
	}
}

func TestRun_InputInvalid(t *testing.T) {
	input := writeFile(t, "record.json", `{
		"firstName": "John", "lastName": "Doe", "email": "john.doe@example.com",
		"password": "password", "confirmPassword": "other",
		"url": "https://example.com", "agree": false, "select": "opcao1", "role": "admin"
	}`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-input", input}, &stdout, &stderr)
	if code != exitInvalid {
		t.Fatalf("exit code = %d, want %d", code, exitInvalid)
	}

	out := stdout.String()
	for _, want := range []string{"O formulário contém erros", "As senhas não coincidem", "Você precisa aceitar os termos"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRun_Schema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-schema"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version: %v", doc["openapi"])
	}
}

func TestRun_ConfigOverridesAndErrors(t *testing.T) {
	cfg := writeFile(t, "formkit.yaml", "locale: en\nlogLevel: warn\n")
	input := writeFile(t, "record.yaml", validYAML)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfg, "-input", input}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Form submitted successfully") {
		t.Fatalf("expected english report:\n%s", stdout.String())
	}
	if strings.Contains(stderr.String(), "submission received") {
		t.Fatalf("info log should be filtered at warn level:\n%s", stderr.String())
	}

	cases := [][]string{
		{"-config", filepath.Join(t.TempDir(), "missing.yaml")},
		{"-log-format", "xml"},
		{"-input", filepath.Join(t.TempDir(), "missing.yaml")},
		{"stray"},
	}
	for _, args := range cases {
		stdout.Reset()
		stderr.Reset()
		if code := run(context.Background(), args, &stdout, &stderr); code != exitUsage {
			t.Fatalf("args %v: exit code = %d, want %d", args, code, exitUsage)
		}
	}
}

func TestReadRecord(t *testing.T) {
	got, err := readRecord(writeFile(t, "r.yaml", "agree: true\nrole: user\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["agree"] != true || got["role"] != "user" {
		t.Fatalf("unexpected record %v", got)
	}

	for _, content := range []string{"", "- a\n- b\n"} {
		if _, err := readRecord(writeFile(t, "bad.yaml", content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestNewReporter_CustomTemplatesKeepMissingHandler(t *testing.T) {
	dir := t.TempDir()
	tpl := `{% autoescape off %}{{ translate("report.custom") }}{% endautoescape %}`
	if err := os.WriteFile(filepath.Join(dir, "report_failure.tpl"), []byte(tpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := config.Default()
	cfg.ReportTemplate = dir
	loc := i18n.Localizer{
		Translator: i18n.Default(),
		Locale:     "en",
		OnMissing: func(_ string, key string, _ []any, _ error) string {
			return "<" + key + ">"
		},
	}
	reporter, err := newReporter(cfg, loc)
	if err != nil {
		t.Fatalf("new reporter: %v", err)
	}

	var out bytes.Buffer
	if err := reporter.Failure(&out, model.ErrorMap{"email": {"Invalid email address"}}, nil); err != nil {
		t.Fatalf("failure: %v", err)
	}
	if got := out.String(); got != "<report.custom>" {
		t.Fatalf("expected missing handler output, got %q", got)
	}
}
