package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/sink"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
	exitAborted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	inputPath  string
	locale     string
	logLevel   string
	logFormat  string
	schema     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("formkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "JSON or YAML settings file")
	fs.StringVar(&opts.inputPath, "input", "", "JSON or YAML record to validate instead of prompting")
	fs.StringVar(&opts.locale, "locale", "", "message locale (default pt-BR)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "", "log format (text or json)")
	fs.BoolVar(&opts.schema, "schema", false, "print the OpenAPI schema of the form and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	cfg = cfg.Override(opts.locale, opts.logLevel, opts.logFormat)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		logger.WithError(err).Error("formkit: load catalog")
		return exitUsage
	}
	loc := i18n.Localizer{Translator: catalog, Locale: cfg.Locale}

	schema, err := validation.New(
		validation.WithTranslator(catalog),
		validation.WithLocale(cfg.Locale),
		validation.WithExtras(cfg.Extras),
	)
	if err != nil {
		logger.WithError(err).Error("formkit: build schema")
		return exitUsage
	}

	if opts.schema {
		return printSchema(ctx, schema, stdout, logger)
	}

	reporter, err := newReporter(cfg, loc)
	if err != nil {
		logger.WithError(err).Error("formkit: build reporter")
		return exitUsage
	}

	ctrl, err := form.New(
		form.WithSchema(schema),
		form.WithLogger(logger),
		form.WithOnValid(sink.Chain(sink.Log(logger), sink.Report(reporter, stdout))),
	)
	if err != nil {
		logger.WithError(err).Error("formkit: mount form")
		return exitUsage
	}

	if opts.inputPath != "" {
		return submitFile(ctx, ctrl, opts.inputPath, reporter, stdout, logger)
	}
	return interactive(ctx, ctrl, cfg, loc, reporter, stdout, logger)
}

func printSchema(ctx context.Context, schema *validation.Schema, stdout io.Writer, logger logrus.FieldLogger) int {
	doc, err := openapi.Document(ctx, schema, "formkit registration", "")
	if err != nil {
		logger.WithError(err).Error("formkit: export schema")
		return exitInvalid
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		logger.WithError(err).Error("formkit: write schema")
		return exitInvalid
	}
	return exitOK
}

func newReporter(cfg config.Config, loc i18n.Localizer) (*render.Reporter, error) {
	opts := []render.ReportOption{render.WithLocalizer(loc)}
	if dir := strings.TrimSpace(cfg.ReportTemplate); dir != "" {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(dir),
			gotemplate.WithFS(render.TemplatesFS()),
			gotemplate.WithTemplateFunc(render.LocalizerFuncs(loc)),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithEngine(engine))
	}
	return render.NewReporter(opts...)
}

func submitFile(ctx context.Context, ctrl *form.Controller, path string, reporter *render.Reporter, stdout io.Writer, logger logrus.FieldLogger) int {
	values, err := readRecord(path)
	if err != nil {
		logger.WithError(err).Error("formkit: read input")
		return exitUsage
	}
	for _, f := range model.Fields() {
		value, ok := values[f.Name]
		if !ok {
			continue
		}
		delete(values, f.Name)
		if err := ctrl.SetFieldValue(f.Name, value); err != nil {
			logger.WithError(err).Error("formkit: apply input")
			return exitUsage
		}
	}
	for key := range values {
		logger.WithField("field", key).Warn("formkit: ignoring unknown input field")
	}

	result := ctrl.Submit(ctx)
	if !result.OK {
		if err := reporter.Failure(stdout, result.Errors, result.Err); err != nil {
			logger.WithError(err).Error("formkit: write report")
		}
		return exitInvalid
	}
	if result.Err != nil {
		return exitInvalid
	}
	return exitOK
}

func interactive(ctx context.Context, ctrl *form.Controller, cfg config.Config, loc i18n.Localizer, reporter *render.Reporter, stdout io.Writer, logger logrus.FieldLogger) int {
	renderer, err := tui.New(
		tui.WithLocalizer(loc),
		tui.WithMaxAttempts(cfg.MaxAttempts),
		tui.WithPromptDriver(tui.NewSurveyDriver(stdout)),
	)
	if err != nil {
		logger.WithError(err).Error("formkit: start terminal session")
		return exitUsage
	}

	result, err := renderer.Run(ctx, ctrl)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		return exitAborted
	case errors.Is(err, tui.ErrAttemptsExhausted):
		if err := reporter.Failure(stdout, result.Errors, nil); err != nil {
			logger.WithError(err).Error("formkit: write report")
		}
		return exitInvalid
	default:
		logger.WithError(err).Error("formkit: session failed")
		return exitInvalid
	}
}

// readRecord decodes a JSON or YAML object.
func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("input %s is empty", path)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	out = nil
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("input %s: invalid JSON or YAML: %w", path, err)
	}
	if out == nil {
		return nil, fmt.Errorf("input %s: expected an object", path)
	}
	return out, nil
}
