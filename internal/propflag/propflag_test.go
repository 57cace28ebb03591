package propflag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := New()

	a, err := r.Register("a")
	require.NoError(t, err)
	assert.Equal(t, Flag(1), a)

	b, err := r.Register("b")
	require.NoError(t, err)
	assert.Equal(t, Flag(2), b)

	// Re-registering is idempotent.
	again, err := r.Register("a")
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, r.Count())
}

func TestMask(t *testing.T) {
	r := New()
	a, _ := r.Register("a")
	b, _ := r.Register("b")

	var m Mask
	m = m.With(a)
	assert.True(t, m.Has(a))
	assert.False(t, m.Has(b))

	m = m.With(b)
	assert.True(t, m.Has(a) && m.Has(b))
}

func TestRegisterCapacity(t *testing.T) {
	r := New()
	for i := 0; i < MaskWidth; i++ {
		_, err := r.Register(fmt.Sprintf("flag_%02d", i))
		require.NoError(t, err)
	}

	_, err := r.Register("one_too_many")
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// The failed registration must not change the registry.
	assert.Equal(t, MaskWidth, r.Count())
	_, ok := r.Lookup("one_too_many")
	assert.False(t, ok)
}

func TestRegisterAll(t *testing.T) {
	t.Run("assigns bits in sorted order", func(t *testing.T) {
		r := New()
		require.NoError(t, r.RegisterAll("zeta", "alpha", "mid"))
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
	})

	t.Run("no partial registration on overflow", func(t *testing.T) {
		r := New()
		for i := 0; i < MaskWidth-1; i++ {
			_, err := r.Register(fmt.Sprintf("flag_%02d", i))
			require.NoError(t, err)
		}

		err := r.RegisterAll("x", "y")
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, MaskWidth-1, r.Count())
		_, ok := r.Lookup("x")
		assert.False(t, ok)
		_, ok = r.Lookup("y")
		assert.False(t, ok)
	})

	t.Run("already-registered names do not count against capacity", func(t *testing.T) {
		r := New()
		for i := 0; i < MaskWidth-1; i++ {
			_, err := r.Register(fmt.Sprintf("flag_%02d", i))
			require.NoError(t, err)
		}
		require.NoError(t, r.RegisterAll("flag_00", "flag_01", "last"))
		assert.Equal(t, MaskWidth, r.Count())
	})
}

func TestName(t *testing.T) {
	r := New()
	a, _ := r.Register("a")

	name, ok := r.Name(a)
	require.True(t, ok)
	assert.Equal(t, "a", name)

	_, ok = r.Name(0)
	assert.False(t, ok)
	_, ok = r.Name(Flag(1) << 63)
	assert.False(t, ok)
}

func TestNewBuiltin(t *testing.T) {
	r, b := NewBuiltin()

	assert.Equal(t, 5, r.Count())

	// No two built-ins may share a bit.
	all := b.Transient | b.Instanced | b.Config | b.DefaultsOnly | b.Hidden
	count := 0
	for m := uint64(all); m != 0; m &= m - 1 {
		count++
	}
	assert.Equal(t, 5, count)

	f, ok := r.Lookup(KeywordDefaultsOnly)
	require.True(t, ok)
	assert.Equal(t, b.DefaultsOnly, f)
}
