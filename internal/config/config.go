// Package config loads the command line front end settings from a JSON or
// YAML file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the file-backed settings. Zero values fall back to Default.
type Config struct {
	Locale         string         `json:"locale" yaml:"locale"`
	Catalog        string         `json:"catalog" yaml:"catalog"`
	LogLevel       string         `json:"logLevel" yaml:"logLevel"`
	LogFormat      string         `json:"logFormat" yaml:"logFormat"`
	MaxAttempts    int            `json:"maxAttempts" yaml:"maxAttempts"`
	ReportTemplate string         `json:"reportTemplate" yaml:"reportTemplate"`
	Extras         map[string]any `json:"extras" yaml:"extras"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Locale:      i18n.DefaultLocale,
		LogLevel:    logrus.InfoLevel.String(),
		LogFormat:   LogFormatText,
		MaxAttempts: 3,
	}
}

// Load reads path and applies defaults. An empty path yields Default.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes JSON first and YAML second, then applies defaults and
// validates the result.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Override replaces settings with non-empty flag values.
func (c Config) Override(locale, logLevel, logFormat string) Config {
	if v := strings.TrimSpace(locale); v != "" {
		c.Locale = v
	}
	if v := strings.TrimSpace(logLevel); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(logFormat); v != "" {
		c.LogFormat = v
	}
	return c
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel %q", ErrInvalid, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: logFormat %q (want text or json)", ErrInvalid, c.LogFormat)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: maxAttempts must be positive, got %d", ErrInvalid, c.MaxAttempts)
	}
	return nil
}

// Logger builds a logrus logger writing to out with the configured level and
// format.
func (c Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: logLevel %q", ErrInvalid, c.LogLevel)
	}
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetLevel(level)
	if strings.EqualFold(c.LogFormat, LogFormatJSON) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}

// LoadCatalog returns the bundled catalog merged with the configured catalog
// file or directory.
func (c Config) LoadCatalog() (*i18n.Catalog, error) {
	catalog, err := i18n.LoadFS(i18n.EmbeddedFS())
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(c.Catalog)
	if path == "" {
		return catalog, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: catalog %s: %w", path, err)
	}
	if info.IsDir() {
		if err := catalog.MergeFS(os.DirFS(path)); err != nil {
			return nil, fmt.Errorf("config: catalog %s: %w", path, err)
		}
		return catalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: catalog %s: %w", path, err)
	}
	if err := catalog.MergeBytes(data, filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("config: catalog %s: %w", path, err)
	}
	return catalog, nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = def.Locale
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = def.LogFormat
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	return c
}

// resolvePaths makes relative file settings relative to the config file.
func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.Catalog, &c.ReportTemplate} {
		v := strings.TrimSpace(*p)
		if v == "" || filepath.IsAbs(v) {
			continue
		}
		*p = filepath.Join(dir, v)
	}
}
