// Package object implements slot-based instance storage for the class
// system. Instances hold native Go values; the class layout they were built
// from is consulted through the Class interface so this package stays free
// of registration concerns.
package object

import (
	"errors"
	"fmt"
)

// Class describes the slot layout an instance was built from. It is
// implemented by the class system's descriptor type.
type Class interface {
	// Name returns the class name.
	Name() string
	// NumSlots returns the total slot count of the full property chain.
	NumSlots() int
	// SlotIndex returns the slot index of a named property.
	SlotIndex(name string) (int, bool)
	// DefaultsOnlySlot reports whether the slot's property is CDO-backed.
	DefaultsOnlySlot(i int) bool
	// CDO returns the class-default object.
	CDO() *Instance
}

// ErrUnknownProperty is returned for named access to a property the class
// does not declare.
var ErrUnknownProperty = errors.New("object: unknown property")

// ErrDefaultsOnlyWrite is returned when a write would create a per-instance
// copy of a defaults-only property. The canonical value lives on the CDO and
// nowhere else.
var ErrDefaultsOnlyWrite = errors.New("object: defaults-only property is CDO-backed and cannot be written per instance")

// ErrSealedWrite is returned when a named write targets a sealed instance.
// The CDO is sealed as registration completes; its values are write-once.
var ErrSealedWrite = errors.New("object: instance is sealed")

// Instance is one allocated object. Slot values are native Go values as
// produced by FromCty: string, float64, bool, []any, map[string]any, or nil.
type Instance struct {
	class  Class
	slots  []any
	sealed bool
}

// New wraps a slot vector into an instance of the given class. The slice is
// owned by the instance afterwards.
func New(class Class, slots []any) *Instance {
	return &Instance{class: class, slots: slots}
}

// Class returns the class descriptor this instance was built from.
func (in *Instance) Class() Class {
	return in.class
}

// NumSlots returns the instance's slot count.
func (in *Instance) NumSlots() int {
	return len(in.slots)
}

// Seal marks the instance write-once. Called by the class system exactly
// once, when CDO construction completes.
func (in *Instance) Seal() {
	in.sealed = true
}

// Sealed reports whether the instance refuses named writes.
func (in *Instance) Sealed() bool {
	return in.sealed
}

// Get returns the raw value at the given slot index.
// Panics if index is out of range.
func (in *Instance) Get(i int) any {
	if i < 0 || i >= len(in.slots) {
		panic(fmt.Sprintf("object: Get slot %d out of range [0,%d)", i, len(in.slots)))
	}
	return in.slots[i]
}

// Set writes the raw value at the given slot index, bypassing the
// defaults-only and seal checks. It is the construction-path primitive; user
// code goes through SetNamed.
// Panics if index is out of range.
func (in *Instance) Set(i int, v any) {
	if i < 0 || i >= len(in.slots) {
		panic(fmt.Sprintf("object: Set slot %d out of range [0,%d)", i, len(in.slots)))
	}
	in.slots[i] = v
}

// GetNamed returns the instance's own storage for a named property, even for
// defaults-only properties (where it holds the freshly-constructed zero
// value). Use Resolve to read the meaningful value.
func (in *Instance) GetNamed(name string) (any, error) {
	i, ok := in.class.SlotIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, in.class.Name(), name)
	}
	return in.slots[i], nil
}

// SetNamed writes a named property on the instance. Writes to defaults-only
// properties are refused on every instance, the CDO included: its values are
// write-once after registration.
func (in *Instance) SetNamed(name string, v any) error {
	i, ok := in.class.SlotIndex(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, in.class.Name(), name)
	}
	if in.sealed {
		return fmt.Errorf("%w: %s.%s", ErrSealedWrite, in.class.Name(), name)
	}
	if in.class.DefaultsOnlySlot(i) {
		return fmt.Errorf("%w: %s.%s", ErrDefaultsOnlyWrite, in.class.Name(), name)
	}
	in.slots[i] = v
	return nil
}

// Resolve reads a named property the way callers are meant to: defaults-only
// properties dereference the class's CDO, everything else reads the
// instance's own storage.
func (in *Instance) Resolve(name string) (any, error) {
	i, ok := in.class.SlotIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, in.class.Name(), name)
	}
	if in.class.DefaultsOnlySlot(i) {
		return in.class.CDO().Get(i), nil
	}
	return in.slots[i], nil
}
