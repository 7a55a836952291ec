package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*
var embeddedLocales embed.FS

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Catalog is an in-memory Translator backed by per-locale message tables.
type Catalog struct {
	fallback string
	messages map[string]map[string]string
}

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// EmbeddedFS returns the bundled locale files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return sub
}

// Default loads the bundled catalogs with DefaultLocale as fallback.
func Default() *Catalog {
	catalog, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(fmt.Errorf("i18n: embedded catalogs: %w", err))
	}
	return catalog
}

// NewCatalog returns an empty catalog falling back to DefaultLocale.
func NewCatalog() *Catalog {
	return &Catalog{
		fallback: normalizeLocale(DefaultLocale),
		messages: make(map[string]map[string]string),
	}
}

// LoadFS walks fsys and merges every JSON/YAML catalog file it finds.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}
	if err := catalog.MergeFS(fsys); err != nil {
		return nil, err
	}
	return catalog, nil
}

// MergeFS loads catalog files from fsys on top of the existing messages.
// Later files win on key collisions.
func (c *Catalog) MergeFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}
		return c.MergeBytes(data, path)
	})
}

// MergeBytes parses one catalog document. source is only used in errors.
func (c *Catalog) MergeBytes(data []byte, source string) error {
	doc, err := parseCatalog(data, source)
	if err != nil {
		return err
	}
	locale := normalizeLocale(doc.Locale)
	if locale == "" {
		locale = normalizeLocale(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
	}
	if locale == "" {
		return fmt.Errorf("i18n: file %s does not declare a locale", source)
	}
	c.Add(locale, doc.Messages)
	return nil
}

// Add registers messages for locale. Markup is stripped from every value.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}
	table, ok := c.messages[locale]
	if !ok {
		table = make(map[string]string, len(messages))
		c.messages[locale] = table
	}
	for key, value := range messages {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if clean := sanitize(value); clean != "" {
			table[key] = clean
		}
	}
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Translate implements Translator. Lookup order is the exact locale, its base
// language, then the fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	for _, candidate := range c.chain(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return format(msg, args), nil
		}
	}
	return "", fmt.Errorf("%w: %q (locale %q)", ErrMissingKey, key, locale)
}

func (c *Catalog) chain(locale string) []string {
	locale = normalizeLocale(locale)
	var out []string
	if locale != "" {
		out = append(out, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			out = append(out, base)
		}
	}
	if c.fallback != "" && c.fallback != locale {
		out = append(out, c.fallback)
	}
	return out
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("i18n: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = catalogFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return catalogFile{}, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// normalizeLocale lower-cases the tag and uses '-' separators so "pt_BR",
// "pt-br" and "PT-BR" resolve to the same table.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	locale = strings.ReplaceAll(locale, "_", "-")
	return strings.ToLower(locale)
}

func sanitize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
