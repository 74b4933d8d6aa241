package polytrans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranslator(t *testing.T, opts ...TranslatorOption) (*Translator, *stubBackend) {
	t.Helper()
	b := newStubBackend()
	reg, err := NewRegistry(NewBase[int]("stub", b, LanguageRules{ChineseCanonical: "zh"}))
	require.NoError(t, err)
	return NewTranslator(reg, opts...), b
}

func TestTranslator_TranslateText(t *testing.T) {
	tr, b := newTestTranslator(t)

	res, err := tr.TranslateText(context.Background(), "STUB", "Hello", "en", "es", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Hola", res.Text)
	assert.Equal(t, "stub", res.Provider)
	assert.Equal(t, 1, b.callCount())
	assert.Equal(t, []string{"stub"}, tr.ListProviders())
	assert.Same(t, tr.Registry(), tr.registry)
}

func TestTranslator_UnknownProvider(t *testing.T) {
	tr, b := newTestTranslator(t)

	_, err := tr.TranslateText(context.Background(), "deepl", "Hello", "en", "es", Options{})

	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Zero(t, b.callCount())
}

func TestTranslator_Cache(t *testing.T) {
	c := newMapCache()
	tr, b := newTestTranslator(t, WithCache(c))
	ctx := context.Background()

	first, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{})
	require.NoError(t, err)
	second, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, b.callCount())
	assert.Equal(t, 1, c.len())

	key := CacheKey("stub", "en", "es", HashText("Hello"))
	cached, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "Hola", cached)

	// A different pair misses.
	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "fr", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, b.callCount())
}

func TestTranslator_CacheHitStillValidatesQuery(t *testing.T) {
	c := newMapCache()
	tr, b := newTestTranslator(t, WithCache(c))
	ctx := context.Background()

	_, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{})
	require.NoError(t, err)

	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{LimitOfLength: 3})
	require.ErrorIs(t, err, ErrQueryTooLong)

	_, err = tr.TranslateText(ctx, "stub", "   ", "en", "es", Options{})
	require.ErrorIs(t, err, ErrEmptyQuery)

	assert.Equal(t, 1, b.callCount())
}

func TestTranslator_CacheKeyIncludesProviderSpecific(t *testing.T) {
	c := newMapCache()
	tr, b := newTestTranslator(t, WithCache(c))
	ctx := context.Background()
	medicine := Options{ProviderSpecific: map[string]any{"professional_field": "medicine"}}

	_, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{})
	require.NoError(t, err)
	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "es", medicine)
	require.NoError(t, err)
	assert.Equal(t, 2, b.callCount())

	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "es", medicine)
	require.NoError(t, err)
	assert.Equal(t, 2, b.callCount())
	assert.Equal(t, 2, c.len())

	law := Options{ProviderSpecific: map[string]any{"professional_field": "law"}}
	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "es", law)
	require.NoError(t, err)
	assert.Equal(t, 3, b.callCount())
}

func TestTranslator_CacheHitNormalizesPair(t *testing.T) {
	c := newMapCache()
	tr, b := newTestTranslator(t, WithCache(c))
	ctx := context.Background()

	first, err := tr.TranslateText(ctx, "stub", "Hello", "en", "zh-CN", Options{})
	require.NoError(t, err)
	second, err := tr.TranslateText(ctx, "stub", "Hello", "en", "zh-hans", Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, b.callCount())
	assert.Equal(t, "zh", first.To)
	assert.Equal(t, "zh", second.To)
	assert.Equal(t, "en", second.From)
	assert.Equal(t, first.Text, second.Text)
}

func TestTranslator_CacheSkipsDetail(t *testing.T) {
	c := newMapCache()
	tr, b := newTestTranslator(t, WithCache(c))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{IsDetailResult: true})
		require.NoError(t, err)
		assert.NotNil(t, res.Detail)
	}

	assert.Equal(t, 2, b.callCount())
	assert.Zero(t, c.len())
	assert.Zero(t, c.gets)
}

func TestTranslator_CacheSkipsTruncated(t *testing.T) {
	c := newMapCache()
	tr, _ := newTestTranslator(t, WithCache(c))

	res, err := tr.TranslateText(context.Background(), "stub", "abcdefgh", "en", "es", Options{
		LimitOfLength:    4,
		IgnoreOverLength: true,
	})
	require.NoError(t, err)

	assert.True(t, res.Truncated)
	assert.Zero(t, c.len())
}

func TestTranslator_CacheWriteFailureIsNotFatal(t *testing.T) {
	c := newMapCache()
	c.setErr = errors.New("disk full")
	tr, _ := newTestTranslator(t, WithCache(c))

	res, err := tr.TranslateText(context.Background(), "stub", "Hello", "en", "es", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Hola", res.Text)
}

func TestTranslator_ValidationErrorNotCached(t *testing.T) {
	c := newMapCache()
	tr, _ := newTestTranslator(t, WithCache(c))

	_, err := tr.TranslateText(context.Background(), "stub", "Hello", "en", "xx", Options{})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Zero(t, c.len())
}

func TestTranslator_Preaccelerate(t *testing.T) {
	tr, b := newTestTranslator(t)

	res, err := tr.Preaccelerate(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"stub"}, res.Success)
	assert.Equal(t, 1, b.callCount())

	_, err = tr.Preaccelerate(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrAlreadyAccelerated)
}

func TestTranslator_PreaccelerateOption(t *testing.T) {
	tr, b := newTestTranslator(t, WithPreaccelerateTimeout(time.Second))
	ctx := context.Background()

	_, err := tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{Preaccelerate: true})
	require.NoError(t, err)
	assert.Equal(t, 2, b.callCount())

	_, err = tr.TranslateText(ctx, "stub", "Hello", "en", "es", Options{Preaccelerate: true})
	require.NoError(t, err)
	assert.Equal(t, 3, b.callCount())
}

func TestTranslator_NoHTMLProcessor(t *testing.T) {
	tr, _ := newTestTranslator(t)

	_, err := tr.TranslateHTML(context.Background(), "stub", "<p>Hello</p>", "en", "es", 0, Options{})

	var pe *ProcessorError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ContentTypeHTML, pe.ContentType)
}

func TestTranslator_HTMLRejectsDetail(t *testing.T) {
	tr, b := newTestTranslator(t)

	_, err := tr.TranslateHTML(context.Background(), "stub", "<p>Hello</p>", "en", "es", 0, Options{IsDetailResult: true})

	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Zero(t, b.callCount())
}
