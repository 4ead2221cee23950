package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"template": map[string]interface{}{
			"lined": map[string]interface{}{
				"name": "Lined",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "Lined", flat["template.lined.name"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{name: "No placeholders", text: "Calendar", expected: "Calendar"},
		{
			name:     "Multiple placeholders",
			text:     "{year}년 {month}월",
			args:     map[string]interface{}{"year": 2024, "month": 2},
			expected: "2024년 2월",
		},
		{
			name:     "Missing argument",
			text:     "Hello {name}",
			args:     map[string]interface{}{"other": "val"},
			expected: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetLocale(t *testing.T) {
	assert.Equal(t, DefaultLocale, GetLocale(context.Background()))
	assert.Equal(t, "en", GetLocale(WithLocale(context.Background(), "en")))
	assert.Equal(t, DefaultLocale, GetLocale(WithLocale(context.Background(), "")))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", DefaultLocale},
		{"en-US,en;q=0.9", "en"},
		{"ko-KR,ko;q=0.9,en;q=0.8", "ko"},
		{"fr-FR,en;q=0.5", "en"},
		{"de", DefaultLocale},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestTranslateLogic(t *testing.T) {
	require.NoError(t, Load())

	mutex.Lock()
	oldTrans := translations
	translations = map[string]map[string]string{
		"ko": {"test.hello": "안녕하세요", "test.welcome": "{name}님 환영합니다"},
		"en": {"test.hello": "Hello"},
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	t.Run("Direct lookup", func(t *testing.T) {
		assert.Equal(t, "Hello", Translate("en", "test.hello"))
		assert.Equal(t, "안녕하세요", Translate("ko", "test.hello"))
	})

	t.Run("Fallback to default", func(t *testing.T) {
		assert.Equal(t, "민수님 환영합니다", Translate("en", "test.welcome", map[string]interface{}{"name": "민수"}))
	})

	t.Run("Fallback to key", func(t *testing.T) {
		assert.Equal(t, "missing.key", Translate("en", "missing.key"))
	})

	t.Run("Context locale", func(t *testing.T) {
		assert.Equal(t, "Hello", T(WithLocale(context.Background(), "en"), "test.hello"))
	})
}

func TestCatalogsAreComplete(t *testing.T) {
	require.NoError(t, Load())

	mutex.RLock()
	defer mutex.RUnlock()

	for _, lang := range SupportedLocales {
		require.NotEmpty(t, translations[lang], lang)
	}
	for key := range translations[DefaultLocale] {
		assert.Contains(t, translations["en"], key, "en is missing %s", key)
	}
	for key := range translations["en"] {
		assert.Contains(t, translations[DefaultLocale], key, "ko is missing %s", key)
	}
}
