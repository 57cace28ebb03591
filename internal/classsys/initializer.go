package classsys

import (
	"errors"
	"fmt"

	"github.com/vk/classkit/internal/model"
	"github.com/vk/classkit/internal/object"
)

// ErrStructuralMismatch is returned when the CDO and the instance under
// construction disagree about the class layout. It is fatal: continuing a
// copy over a corrupted layout would leave the instance unobservable.
var ErrStructuralMismatch = errors.New("classsys: CDO/instance layout mismatch")

// NewInstance constructs a fresh instance of the named class.
//
// Every slot starts at its type's zero value. The native initializer then
// walks the property chain in declaration order copying defaults from the
// CDO; for extended classes the custom property list drives the second copy
// pass over the class's own and overridden properties. A property the shared
// predicate excludes (defaults_only above all) is copied by neither pass and
// keeps its zero-value storage.
//
// NewInstance is safe for concurrent use once registration has finished:
// it only reads the sealed descriptor and CDO.
func (r *Registry) NewInstance(name string) (*object.Instance, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}

	if c.cdo.NumSlots() != len(c.chain) {
		return nil, fmt.Errorf("%w: class %s CDO has %d slots, chain has %d",
			ErrStructuralMismatch, c.name, c.cdo.NumSlots(), len(c.chain))
	}

	slots := make([]any, len(c.chain))
	for i, p := range c.chain {
		slots[i] = object.Zero(p.Type)
	}
	inst := object.New(c, slots)

	// Native pass: the full chain for root classes, the inherited portion
	// for extended classes.
	nativeEnd := len(c.chain)
	if c.base != nil {
		nativeEnd = c.base.NumSlots()
	}
	for i := 0; i < nativeEnd; i++ {
		if err := r.copySlot(c, inst, c.chain[i]); err != nil {
			return nil, err
		}
	}

	// Custom pass for extended classes, structurally identical to the
	// native one but scoped to the custom property list.
	for _, p := range c.custom {
		if err := r.copySlot(c, inst, p); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// copySlot applies the shared copy decision to one property and, when the
// copy is due, deep-copies the CDO's value into the instance's identical
// slot.
func (r *Registry) copySlot(c *Class, inst *object.Instance, p *model.PropertyDefinition) error {
	if !model.ShouldCopyFromDefaults(p, r.builtins) {
		return nil
	}
	if p.Offset < 0 || p.Offset >= c.cdo.NumSlots() {
		return fmt.Errorf("%w: property %s.%s has offset %d outside CDO layout",
			ErrStructuralMismatch, c.name, p.Name, p.Offset)
	}
	v := c.cdo.Get(p.Offset)
	if !object.Conforms(v, p.Type) {
		return fmt.Errorf("%w: property %s.%s: CDO value does not match declared type %s",
			ErrStructuralMismatch, c.name, p.Name, p.Type.FriendlyName())
	}
	inst.Set(p.Offset, object.DeepCopy(v))
	return nil
}
