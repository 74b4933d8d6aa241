package polytrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashText(t *testing.T) {
	h := HashText("Hello")

	assert.Len(t, h, 64)
	assert.Equal(t, "185f8db32271fe25f561a6fc938b2e264306ec304eda518007d1764826381969", h)
	assert.Equal(t, h, HashText("  Hello\n"))
	assert.NotEqual(t, h, HashText("hello"))
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("Google", "zh_CN", "EN", "abc")
	assert.Equal(t, "google:zh-cn:en:abc", key)

	assert.NotEqual(t, CacheKey("google", "en", "fr", "abc"), CacheKey("libre", "en", "fr", "abc"))
	assert.NotEqual(t, CacheKey("google", "en", "fr", "abc"), CacheKey("google", "en", "de", "abc"))
}

func TestOptionsHash(t *testing.T) {
	assert.Empty(t, OptionsHash(nil))
	assert.Empty(t, OptionsHash(map[string]any{}))

	a := OptionsHash(map[string]any{"model": "gpt-4o", "professional_field": "law"})
	b := OptionsHash(map[string]any{"professional_field": "law", "model": "gpt-4o"})
	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, OptionsHash(map[string]any{"model": "gpt-4o", "professional_field": "medicine"}))
}
