package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(language.English, map[language.Tag]Messages{
		language.English: {"Not found": "Not found", "Conflict": "Conflict"},
		language.German:  {"Not found": "Nicht gefunden"},
	})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("missing default language", func(t *testing.T) {
		_, err := New(language.French, map[language.Tag]Messages{
			language.English: {"Not found": "Not found"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingDefaultLanguage)
		assert.Contains(t, err.Error(), "fr")
	})

	t.Run("empty default language", func(t *testing.T) {
		_, err := New(language.English, map[language.Tag]Messages{language.English: {}})
		assert.ErrorIs(t, err, ErrMissingDefaultLanguage)
	})

	t.Run("languages default first", func(t *testing.T) {
		c := newTestCatalog(t)
		assert.Equal(t, language.English, c.Default())
		assert.Equal(t, []language.Tag{language.English, language.German}, c.Languages())
	})
}

func TestPrinter(t *testing.T) {
	c := newTestCatalog(t)

	t.Run("translated", func(t *testing.T) {
		assert.Equal(t, "Nicht gefunden", c.Printer(language.German).Sprintf("Not found"))
	})

	t.Run("fallback to default for missing key", func(t *testing.T) {
		assert.Equal(t, "Conflict", c.Printer(language.German).Sprintf("Conflict"))
	})

	t.Run("unknown language uses default", func(t *testing.T) {
		assert.Equal(t, "Not found", c.Printer(language.Japanese).Sprintf("Not found"))
	})

	t.Run("default printer", func(t *testing.T) {
		assert.Equal(t, "Not found", c.DefaultPrinter().Sprintf("Not found"))
	})
}

func TestMatchHeader(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, language.German, c.MatchHeader("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, language.English, c.MatchHeader(""))
	assert.Equal(t, language.English, c.MatchHeader("ja"))
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	p := newTestCatalog(t).Printer(language.German)
	ctx := NewContext(context.Background(), p)
	require.Same(t, p, FromContext(ctx))
	assert.Equal(t, "Nicht gefunden", FromContext(ctx).Sprintf("Not found"))
}
