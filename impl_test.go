package hookrelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopHookFunc(Args) (any, error) { return nil, nil }

func nopWrapperFunc(Args) (Teardown, error) {
	return func(*Outcome) {}, nil
}

func TestNewImpl(t *testing.T) {
	t.Run("builds an ordinary implementation", func(t *testing.T) {
		impl, err := NewImpl("p1", nopHookFunc, ImplOpts{
			Params: []string{"a"},
			Owner:  "p1",
		})
		require.NoError(t, err)
		assert.Equal(t, "p1", impl.Plugin())
		assert.Equal(t, "p1", impl.Owner())
		assert.Equal(t, []string{"a"}, impl.Params())
		assert.False(t, impl.IsWrapper())
		assert.False(t, impl.TryFirst())
		assert.False(t, impl.TryLast())
		assert.False(t, impl.Optional())
	})

	t.Run("rejects nil callable", func(t *testing.T) {
		_, err := NewImpl("p1", nil, ImplOpts{})
		require.ErrorIs(t, err, ErrNilCallable)
	})

	t.Run("rejects tryfirst with trylast", func(t *testing.T) {
		_, err := NewImpl("p1", nopHookFunc, ImplOpts{TryFirst: true, TryLast: true})
		require.ErrorIs(t, err, ErrImplFlags)
	})

	t.Run("rejects an uncomparable owner identity", func(t *testing.T) {
		_, err := NewImpl("p1", nopHookFunc, ImplOpts{Owner: []string{"not", "comparable"}})
		require.ErrorIs(t, err, ErrOwnerNotComparable)
	})
}

func TestNewWrapper(t *testing.T) {
	t.Run("builds a wrapper implementation", func(t *testing.T) {
		impl, err := NewWrapper("p1", nopWrapperFunc, ImplOpts{})
		require.NoError(t, err)
		assert.True(t, impl.IsWrapper())
	})

	t.Run("rejects nil callable", func(t *testing.T) {
		_, err := NewWrapper("p1", nil, ImplOpts{})
		require.ErrorIs(t, err, ErrNilCallable)
	})

	t.Run("rejects tryfirst with trylast", func(t *testing.T) {
		_, err := NewWrapper("p1", nopWrapperFunc, ImplOpts{TryFirst: true, TryLast: true})
		require.ErrorIs(t, err, ErrImplFlags)
	})

	t.Run("rejects an uncomparable owner identity", func(t *testing.T) {
		_, err := NewWrapper("p1", nopWrapperFunc, ImplOpts{Owner: map[string]int{}})
		require.ErrorIs(t, err, ErrOwnerNotComparable)
	})
}

func TestImplCallArgs(t *testing.T) {
	t.Run("extracts the declared subset", func(t *testing.T) {
		impl, err := NewImpl("p1", nopHookFunc, ImplOpts{Params: []string{"a", "b"}})
		require.NoError(t, err)

		sub, err := impl.callArgs(Args{"a": 1, "b": 2, "c": 3})
		require.NoError(t, err)
		assert.Equal(t, Args{"a": 1, "b": 2}, sub)
	})

	t.Run("fails on a missing declared argument", func(t *testing.T) {
		impl, err := NewImpl("p1", nopHookFunc, ImplOpts{Params: []string{"a", "b"}})
		require.NoError(t, err)

		_, err = impl.callArgs(Args{"a": 1})
		require.ErrorIs(t, err, ErrMissingArgument)
		assert.Contains(t, err.Error(), `"b"`)
	})
}

func TestImplForPlugin(t *testing.T) {
	impl, err := NewImpl("declared", nopHookFunc, ImplOpts{Params: []string{"a"}})
	require.NoError(t, err)

	owner := struct{ id int }{7}
	clone := impl.forPlugin(owner, "registered")

	assert.Equal(t, owner, clone.Owner())
	assert.Equal(t, "registered", clone.Plugin())
	// the original record is untouched
	assert.Nil(t, impl.Owner())
	assert.Equal(t, "declared", impl.Plugin())
}

func TestImplAsExtra(t *testing.T) {
	impl, err := NewImpl("p1", nopHookFunc, ImplOpts{
		Params:   []string{"a"},
		Owner:    "p1",
		TryFirst: true,
	})
	require.NoError(t, err)

	extra := impl.asExtra()
	assert.Nil(t, extra.Owner())
	assert.False(t, extra.TryFirst())
	assert.False(t, extra.TryLast())
	assert.Equal(t, "p1", extra.Plugin())

	anon, err := NewImpl("", nopHookFunc, ImplOpts{})
	require.NoError(t, err)
	assert.Equal(t, "<extra>", anon.asExtra().Plugin())
}
