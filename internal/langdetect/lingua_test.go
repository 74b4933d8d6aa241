package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectISO6391(t *testing.T) {
	assert.Equal(t, "en", DetectISO6391("The quick brown fox jumps over the lazy dog near the river bank."))
	assert.Equal(t, "fr", DetectISO6391("Bonjour tout le monde, je suis très heureux de vous voir aujourd'hui."))
	assert.Equal(t, "de", DetectISO6391("Guten Morgen, wie geht es Ihnen heute? Das Wetter ist wirklich schön."))
}

func TestDetectISO6391_ShortOrEmpty(t *testing.T) {
	assert.Equal(t, "", DetectISO6391(""))
	assert.Equal(t, "", DetectISO6391("   "))
	assert.Equal(t, "", DetectISO6391("a1"))
	assert.Equal(t, "", DetectISO6391("12345 !!!"))
}
