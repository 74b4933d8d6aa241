package polytrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(&funcAdapter{name: "Lingva"}, &funcAdapter{name: " google "})
	require.NoError(t, err)

	assert.Equal(t, []string{"google", "lingva"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Has("GOOGLE"))
	assert.False(t, reg.Has("deepl"))

	a, err := reg.Adapter(" Lingva")
	require.NoError(t, err)
	assert.Equal(t, "Lingva", a.Name())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	reg, err := NewRegistry(&funcAdapter{name: "google"})
	require.NoError(t, err)

	_, err = reg.Adapter("deepl")
	require.ErrorIs(t, err, ErrUnknownProvider)
	assert.Contains(t, err.Error(), `"deepl"`)
	assert.Contains(t, err.Error(), "available: google")
}

func TestRegistry_Invalid(t *testing.T) {
	_, err := NewRegistry(&funcAdapter{name: "a"}, &funcAdapter{name: "A"})
	assert.ErrorContains(t, err, "registered twice")

	_, err = NewRegistry(&funcAdapter{name: "  "})
	assert.ErrorContains(t, err, "name is required")

	_, err = NewRegistry(nil)
	assert.ErrorContains(t, err, "nil")
}

func TestRegistry_NamesIsACopy(t *testing.T) {
	reg, err := NewRegistry(&funcAdapter{name: "a"}, &funcAdapter{name: "b"})
	require.NoError(t, err)

	names := reg.Names()
	names[0] = "z"
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestRegistry_Nil(t *testing.T) {
	var reg *Registry
	assert.Zero(t, reg.Len())
	assert.Nil(t, reg.Names())
	_, err := reg.Adapter("x")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
