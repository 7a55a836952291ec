package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLocale is the display language used when none is configured.
const DefaultLocale = "pt-BR"

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// Translator was configured.
	ErrMissingTranslator = errors.New("i18n: translator is not configured")
	// ErrMissingKey signals the catalog has no entry for a key in any fallback
	// locale.
	ErrMissingKey = errors.New("i18n: missing translation")
)

// Translator resolves message keys into display strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to display when a key cannot be
// resolved. err is ErrMissingTranslator, ErrMissingKey or the translator error.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// MissingKey is the default handler; it displays the key itself.
func MissingKey(_ string, key string, _ []any, _ error) string {
	return key
}

// Localizer binds a translator to a locale so callers resolve keys without
// threading both around.
type Localizer struct {
	Translator Translator
	Locale     string
	OnMissing  MissingTranslationHandler
}

// T resolves key, falling back to OnMissing.
func (l Localizer) T(key string, args ...any) string {
	return Translate(l.Translator, l.Locale, key, l.OnMissing, args...)
}

// Translate resolves key through t, routing failures to onMissing.
func Translate(t Translator, locale, key string, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = MissingKey
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if err == nil {
		err = ErrMissingKey
	}
	return onMissing(locale, key, args, err)
}

func format(message string, args []any) string {
	if len(args) == 0 || !strings.Contains(message, "%") {
		return message
	}
	return fmt.Sprintf(message, args...)
}
