package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_ResolvesBundledLocales(t *testing.T) {
	catalog := Default()

	msg, err := catalog.Translate("pt-BR", "confirmPassword.match")
	require.NoError(t, err)
	assert.Equal(t, "As senhas não coincidem", msg)

	msg, err = catalog.Translate("en", "confirmPassword.match")
	require.NoError(t, err)
	assert.Equal(t, "Passwords do not match", msg)

	assert.ElementsMatch(t, []string{"pt-br", "en"}, catalog.Locales())
}

func TestCatalog_LocaleFallbackChain(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add("pt-BR", map[string]string{"greeting": "Olá"})
	catalog.Add("en", map[string]string{"greeting": "Hello", "farewell": "Bye"})
	catalog.Add("en-GB", map[string]string{"greeting": "Hiya"})

	cases := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{name: "exact", locale: "en-GB", key: "greeting", want: "Hiya"},
		{name: "base language", locale: "en-US", key: "greeting", want: "Hello"},
		{name: "underscore separator", locale: "en_gb", key: "greeting", want: "Hiya"},
		{name: "base for missing key", locale: "en-GB", key: "farewell", want: "Bye"},
		{name: "fallback locale", locale: "de", key: "greeting", want: "Olá"},
		{name: "empty locale", locale: "", key: "greeting", want: "Olá"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := catalog.Translate(tc.locale, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCatalog_MissingKey(t *testing.T) {
	_, err := NewCatalog().Translate("en", "nope")
	assert.True(t, errors.Is(err, ErrMissingKey))
}

func TestCatalog_FormatsArguments(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add("en", map[string]string{"min": "at least %d characters"})

	got, err := catalog.Translate("en", "min", 3)
	require.NoError(t, err)
	assert.Equal(t, "at least 3 characters", got)
}

func TestCatalog_MergeFSStripsMarkup(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/en.yaml": {Data: []byte("locale: en\nmessages:\n  agree.required: \"<b>Accept</b> terms & conditions<script>alert(1)</script>\"\n")},
		"custom/es.json": {Data: []byte(`{"messages": {"agree.required": "Acepte los términos"}}`)},
		"README.md":      {Data: []byte("ignored")},
	}

	catalog, err := LoadFS(fsys)
	require.NoError(t, err)

	got, err := catalog.Translate("en", "agree.required")
	require.NoError(t, err)
	assert.Equal(t, "Accept terms & conditions", got)

	got, err = catalog.Translate("es", "agree.required")
	require.NoError(t, err)
	assert.Equal(t, "Acepte los términos", got)
}

func TestCatalog_MergeBytesRejectsEmpty(t *testing.T) {
	err := NewCatalog().MergeBytes([]byte("  "), "blank.yaml")
	assert.Error(t, err)
}

func TestTranslate_MissingHandlers(t *testing.T) {
	var gotErr error
	handler := func(locale, key string, _ []any, err error) string {
		gotErr = err
		return "[" + locale + ":" + key + "]"
	}

	assert.Equal(t, "[en:x]", Translate(nil, "en", "x", handler))
	assert.True(t, errors.Is(gotErr, ErrMissingTranslator))

	assert.Equal(t, "[en:x]", Translate(NewCatalog(), "en", "x", handler))
	assert.True(t, errors.Is(gotErr, ErrMissingKey))

	assert.Equal(t, "x", Translate(nil, "en", "x", nil))
	assert.Equal(t, "", Translate(Default(), "en", "  ", nil))
}

func TestLocalizer(t *testing.T) {
	l := Localizer{Translator: Default(), Locale: "en"}
	assert.Equal(t, "Email", l.T("field.email"))
	assert.Equal(t, "unknown.key", l.T("unknown.key"))
}
