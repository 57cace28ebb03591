package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClass is a minimal Class implementation for storage-level tests.
type fakeClass struct {
	name         string
	slots        map[string]int
	defaultsOnly map[int]bool
	cdo          *Instance
}

func (c *fakeClass) Name() string   { return c.name }
func (c *fakeClass) NumSlots() int  { return len(c.slots) }
func (c *fakeClass) CDO() *Instance { return c.cdo }

func (c *fakeClass) SlotIndex(name string) (int, bool) {
	i, ok := c.slots[name]
	return i, ok
}

func (c *fakeClass) DefaultsOnlySlot(i int) bool { return c.defaultsOnly[i] }

func newFakeClass(t *testing.T) *fakeClass {
	t.Helper()
	c := &fakeClass{
		name:         "Monster",
		slots:        map[string]int{"name": 0, "loot_table": 1},
		defaultsOnly: map[int]bool{1: true},
	}
	c.cdo = New(c, []any{"grunt", []any{"gold", "potion"}})
	c.cdo.Seal()
	return c
}

func TestSlotAccess(t *testing.T) {
	c := newFakeClass(t)
	inst := New(c, []any{"", []any{}})

	inst.Set(0, "boss")
	assert.Equal(t, "boss", inst.Get(0))
	assert.Equal(t, 2, inst.NumSlots())

	assert.Panics(t, func() { inst.Get(2) })
	assert.Panics(t, func() { inst.Set(-1, nil) })
}

func TestNamedAccess(t *testing.T) {
	c := newFakeClass(t)
	inst := New(c, []any{"grunt", []any{}})

	v, err := inst.GetNamed("name")
	require.NoError(t, err)
	assert.Equal(t, "grunt", v)

	_, err = inst.GetNamed("missing")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	require.NoError(t, inst.SetNamed("name", "boss"))
	v, _ = inst.GetNamed("name")
	assert.Equal(t, "boss", v)
}

func TestDefaultsOnlyWriteRefused(t *testing.T) {
	c := newFakeClass(t)
	inst := New(c, []any{"grunt", []any{}})

	err := inst.SetNamed("loot_table", []any{"stolen"})
	assert.ErrorIs(t, err, ErrDefaultsOnlyWrite)

	// The instance's own storage stays at its zero value.
	own, _ := inst.GetNamed("loot_table")
	assert.Empty(t, own)
}

func TestSealedCDOIsWriteOnce(t *testing.T) {
	c := newFakeClass(t)

	assert.True(t, c.cdo.Sealed())
	err := c.cdo.SetNamed("name", "renamed")
	assert.ErrorIs(t, err, ErrSealedWrite)
	assert.Equal(t, "grunt", c.cdo.Get(0))
}

func TestResolve(t *testing.T) {
	c := newFakeClass(t)
	inst := New(c, []any{"boss", []any{}})

	// Plain property reads instance storage.
	v, err := inst.Resolve("name")
	require.NoError(t, err)
	assert.Equal(t, "boss", v)

	// Defaults-only property dereferences the CDO.
	v, err = inst.Resolve("loot_table")
	require.NoError(t, err)
	assert.Equal(t, []any{"gold", "potion"}, v)

	_, err = inst.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}
