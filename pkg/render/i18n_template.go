package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// Locale is used when a template calls the helper without one.
	Locale string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing i18n.MissingTranslationHandler
}

// LocalizerFuncs is TemplateI18nFuncs configured from loc, including its
// missing translation handler.
func LocalizerFuncs(loc i18n.Localizer) map[string]any {
	return TemplateI18nFuncs(loc.Translator, TemplateI18nConfig{
		Locale:    loc.Locale,
		OnMissing: loc.OnMissing,
	})
}

// TemplateI18nFuncs returns helpers suitable for gotemplate.WithTemplateFunc.
//
//	translate(key, ...args) string
//	translate_in(locale, key, ...args) string
//	current_locale() string
func TemplateI18nFuncs(t i18n.Translator, cfg TemplateI18nConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}

	return map[string]any{
		translateName: func(key string, params ...any) string {
			return i18n.Translate(t, locale, key, cfg.OnMissing, params...)
		},
		translateName + "_in": func(localeSrc any, key string, params ...any) string {
			return i18n.Translate(t, resolveLocale(localeSrc, locale), key, cfg.OnMissing, params...)
		},
		"current_locale": func() string {
			return locale
		},
	}
}

func resolveLocale(src any, fallback string) string {
	switch v := src.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	case map[string]any:
		if raw, ok := v["locale"]; ok && raw != nil {
			return resolveLocale(fmt.Sprint(raw), fallback)
		}
	}
	return fallback
}
