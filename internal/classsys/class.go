package classsys

import (
	"github.com/vk/classkit/internal/model"
	"github.com/vk/classkit/internal/object"
)

// Class is the registered descriptor for one class: its full property chain,
// custom property list, and CDO. It outlives every instance of the class and
// is immutable once Register returns.
type Class struct {
	name         string
	base         *Class
	chain        []*model.PropertyDefinition
	slotByName   map[string]int
	defaultsOnly []bool
	custom       []*model.PropertyDefinition
	cdo          *object.Instance
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Base returns the base class, or nil for a root class.
func (c *Class) Base() *Class { return c.base }

// NumSlots returns the length of the full property chain.
func (c *Class) NumSlots() int { return len(c.chain) }

// Chain returns the full property chain in declaration order, base
// properties first. The returned slice must not be mutated.
func (c *Class) Chain() []*model.PropertyDefinition { return c.chain }

// CustomProperties returns the custom property list: the extended class's
// own and overridden properties that need the explicit post-construction
// copy pass. Nil for root classes.
func (c *Class) CustomProperties() []*model.PropertyDefinition { return c.custom }

// SlotIndex returns the slot index of a named property.
func (c *Class) SlotIndex(name string) (int, bool) {
	i, ok := c.slotByName[name]
	return i, ok
}

// DefaultsOnlySlot reports whether the property at the given slot carries
// the defaults-only flag.
func (c *Class) DefaultsOnlySlot(i int) bool {
	if i < 0 || i >= len(c.defaultsOnly) {
		return false
	}
	return c.defaultsOnly[i]
}

// CDO returns the class-default object.
func (c *Class) CDO() *object.Instance { return c.cdo }
