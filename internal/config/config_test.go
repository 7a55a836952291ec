package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestParse_YAMLAndJSON(t *testing.T) {
	yamlCfg, err := Parse([]byte(`
locale: en
logLevel: debug
logFormat: json
maxAttempts: 5
extras:
  closedRoles: [admin]
`), "formkit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "en", yamlCfg.Locale)
	assert.Equal(t, "debug", yamlCfg.LogLevel)
	assert.Equal(t, LogFormatJSON, yamlCfg.LogFormat)
	assert.Equal(t, 5, yamlCfg.MaxAttempts)
	assert.Equal(t, []any{"admin"}, yamlCfg.Extras["closedRoles"])

	jsonCfg, err := Parse([]byte(`{"locale":"en","maxAttempts":2}`), "formkit.json")
	require.NoError(t, err)
	assert.Equal(t, "en", jsonCfg.Locale)
	assert.Equal(t, 2, jsonCfg.MaxAttempts)
	assert.Equal(t, "info", jsonCfg.LogLevel)
	assert.Equal(t, LogFormatText, jsonCfg.LogFormat)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":    "   ",
		"syntax":   "locale: [unterminated",
		"level":    "logLevel: loud",
		"format":   "logFormat: xml",
		"attempts": "maxAttempts: -1",
	}
	for name, raw := range cases {
		_, err := Parse([]byte(raw), name)
		assert.Error(t, err, name)
	}
	_, err := Parse([]byte("logFormat: xml"), "x")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.yaml"), []byte("messages:\n  field.email: Correo\n"), 0o644))
	cfgPath := filepath.Join(dir, "formkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog: es.yaml\nreportTemplate: templates\n"), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "es.yaml"), cfg.Catalog)
	assert.Equal(t, filepath.Join(dir, "templates"), cfg.ReportTemplate)

	catalog, err := cfg.LoadCatalog()
	require.NoError(t, err)
	msg, err := catalog.Translate("es", "field.email")
	require.NoError(t, err)
	assert.Equal(t, "Correo", msg)

	msg, err = catalog.Translate("en", "field.email")
	require.NoError(t, err)
	assert.Equal(t, "Email", msg)
}

func TestLoadCatalog_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"locale":"en","messages":{"ui.submitted":"Done"}}`), 0o644))

	cfg := Default()
	cfg.Catalog = dir
	catalog, err := cfg.LoadCatalog()
	require.NoError(t, err)

	msg, err := catalog.Translate("en", "ui.submitted")
	require.NoError(t, err)
	assert.Equal(t, "Done", msg)

	cfg.Catalog = filepath.Join(dir, "missing")
	_, err = cfg.LoadCatalog()
	assert.Error(t, err)
}

func TestOverrideAndLogger(t *testing.T) {
	cfg := Default().Override("en", "debug", "json")
	assert.Equal(t, "en", cfg.Locale)

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("field", "email").Debug("form: revalidated")
	assert.Contains(t, buf.String(), `"field":"email"`)

	unchanged := Default().Override(" ", "", "")
	assert.Equal(t, Default(), unchanged)

	_, err = Config{LogLevel: "loud"}.Logger(nil)
	assert.ErrorIs(t, err, ErrInvalid)
}
