package hookrelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpec(t *testing.T) {
	t.Run("builds a plain specification", func(t *testing.T) {
		spec, err := NewSpec("setup", SpecOpts{
			Params:   []string{"a", "b"},
			Defaults: []string{"c"},
		})
		require.NoError(t, err)
		assert.Equal(t, "setup", spec.Name())
		assert.Equal(t, []string{"a", "b"}, spec.Params())
		assert.Equal(t, []string{"c"}, spec.Defaults())
		assert.False(t, spec.FirstResult())
		assert.False(t, spec.Historic())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSpec("", SpecOpts{})
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects historic firstresult combination", func(t *testing.T) {
		_, err := NewSpec("setup", SpecOpts{FirstResult: true, Historic: true})
		require.ErrorIs(t, err, ErrHistoricFirstResult)
	})

	t.Run("allows either mode alone", func(t *testing.T) {
		first, err := NewSpec("pick", SpecOpts{FirstResult: true})
		require.NoError(t, err)
		assert.True(t, first.FirstResult())

		hist, err := NewSpec("announce", SpecOpts{Historic: true})
		require.NoError(t, err)
		assert.True(t, hist.Historic())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		spec, err := NewSpec("setup", SpecOpts{Params: []string{"a"}})
		require.NoError(t, err)

		spec.Params()[0] = "mutated"
		assert.Equal(t, []string{"a"}, spec.Params())
	})
}

func TestSpecAllows(t *testing.T) {
	spec, err := NewSpec("setup", SpecOpts{
		Params:   []string{"a", "b"},
		Defaults: []string{"c"},
	})
	require.NoError(t, err)

	assert.True(t, spec.allows("a"))
	assert.True(t, spec.allows("b"))
	assert.True(t, spec.allows("c"))
	assert.False(t, spec.allows("d"))
}
