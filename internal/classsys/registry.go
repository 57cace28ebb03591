package classsys

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/classkit/internal/ctxlog"
	"github.com/vk/classkit/internal/model"
	"github.com/vk/classkit/internal/object"
	"github.com/vk/classkit/internal/propflag"
)

var (
	// ErrUnknownClass is returned when a lookup or instantiation names a
	// class that was never registered.
	ErrUnknownClass = errors.New("classsys: unknown class")

	// ErrDuplicateClass is returned when a class name is registered twice.
	ErrDuplicateClass = errors.New("classsys: class already registered")

	// ErrBadOverride is returned when a derived class re-declares a base
	// property with a different type or flag mask.
	ErrBadOverride = errors.New("classsys: invalid property override")

	// ErrUnresolvedBase is returned by RegisterAll when no registration
	// order can satisfy every extends reference.
	ErrUnresolvedBase = errors.New("classsys: unresolved base class")
)

// Registry is the class-system context. It owns the flag registry, the class
// table, and every CDO. One Registry per class system; nothing here is
// global.
type Registry struct {
	flags    *propflag.Registry
	builtins propflag.Builtins
	classes  map[string]*Class
	order    []string
}

// New creates an empty class system around the given flag registry.
func New(flags *propflag.Registry, builtins propflag.Builtins) *Registry {
	return &Registry{
		flags:    flags,
		builtins: builtins,
		classes:  make(map[string]*Class),
	}
}

// Flags returns the flag registry this class system resolves keywords with.
func (r *Registry) Flags() *propflag.Registry { return r.flags }

// Builtins returns the resolved built-in flag bits.
func (r *Registry) Builtins() propflag.Builtins { return r.builtins }

// Lookup returns the registered class with the given name. O(1).
func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Classes returns all registered classes in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.classes[name])
	}
	return out
}

// Register adds one class definition to the system: it resolves the base
// chain, assigns slot offsets, builds the custom property list for extended
// classes, and constructs the CDO. The base class must already be
// registered.
func (r *Registry) Register(ctx context.Context, def *model.ClassDefinition) (*Class, error) {
	logger := ctxlog.FromContext(ctx)

	if _, exists := r.classes[def.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, def.Name)
	}

	var base *Class
	if def.Extends != "" {
		var ok bool
		base, ok = r.classes[def.Extends]
		if !ok {
			return nil, fmt.Errorf("%w: class %s extends %s", ErrUnknownClass, def.Name, def.Extends)
		}
	}

	c := &Class{name: def.Name, base: base}

	// Assemble the full chain: base slots first, then the class's own
	// properties. An own property re-declaring a base name overrides the
	// base entry in place, keeping its slot.
	if base != nil {
		c.chain = make([]*model.PropertyDefinition, len(base.chain))
		copy(c.chain, base.chain)
	}
	c.slotByName = make(map[string]int, len(c.chain)+len(def.Properties))
	for i, p := range c.chain {
		c.slotByName[p.Name] = i
	}

	for _, p := range def.Properties {
		if slot, overrides := c.slotByName[p.Name]; overrides {
			baseProp := c.chain[slot]
			if !p.Type.Equals(baseProp.Type) {
				return nil, fmt.Errorf("%w: %s.%s re-declares type %s as %s",
					ErrBadOverride, def.Name, p.Name, baseProp.Type.FriendlyName(), p.Type.FriendlyName())
			}
			if p.Flags != baseProp.Flags {
				return nil, fmt.Errorf("%w: %s.%s changes the flag mask of the base declaration",
					ErrBadOverride, def.Name, p.Name)
			}
			p.Offset = slot
			c.chain[slot] = p
		} else {
			p.Offset = len(c.chain)
			c.chain = append(c.chain, p)
			c.slotByName[p.Name] = p.Offset
		}
	}

	c.defaultsOnly = make([]bool, len(c.chain))
	for i, p := range c.chain {
		c.defaultsOnly[i] = p.Flags.Has(r.builtins.DefaultsOnly)
	}

	// Extended classes get a custom property list covering their own and
	// overridden properties; the base portion is handled by the native
	// initializer.
	if base != nil {
		for _, p := range def.Properties {
			if model.InCustomPropertyList(p, r.builtins) {
				c.custom = append(c.custom, p)
			}
		}
	}

	cdo, err := r.buildCDO(c)
	if err != nil {
		return nil, fmt.Errorf("building CDO for class %s: %w", def.Name, err)
	}
	c.cdo = cdo

	r.classes[c.name] = c
	r.order = append(r.order, c.name)
	logger.Debug("Class registered.",
		"class", c.name,
		"extends", def.Extends,
		"slots", len(c.chain),
		"custom_properties", len(c.custom),
	)
	return c, nil
}

// buildCDO constructs the class-default object: every slot holds the
// declared default (or the type's zero value), and the instance is sealed so
// its values stay write-once for the rest of the process lifetime.
func (r *Registry) buildCDO(c *Class) (*object.Instance, error) {
	slots := make([]any, len(c.chain))
	for i, p := range c.chain {
		if p.Default != nil {
			native, err := object.FromCty(*p.Default)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", p.Name, err)
			}
			slots[i] = native
		} else {
			slots[i] = object.Zero(p.Type)
		}
	}
	cdo := object.New(c, slots)
	cdo.Seal()
	return cdo, nil
}

// RegisterAll registers a batch of definitions, ordering them so every base
// registers before its derived classes. Definition order is preserved among
// classes at the same depth.
func (r *Registry) RegisterAll(ctx context.Context, defs []*model.ClassDefinition) error {
	pending := make([]*model.ClassDefinition, len(defs))
	copy(pending, defs)

	for len(pending) > 0 {
		progressed := false
		var next []*model.ClassDefinition
		for _, def := range pending {
			_, haveBase := r.classes[def.Extends]
			if def.Extends == "" || haveBase {
				if _, err := r.Register(ctx, def); err != nil {
					return err
				}
				progressed = true
			} else {
				next = append(next, def)
			}
		}
		if !progressed {
			names := make([]string, len(next))
			for i, def := range next {
				names[i] = fmt.Sprintf("%s (extends %s)", def.Name, def.Extends)
			}
			return fmt.Errorf("%w: %v", ErrUnresolvedBase, names)
		}
		pending = next
	}
	return nil
}
