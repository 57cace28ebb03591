package model

import (
	"github.com/vk/classkit/internal/propflag"
)

// ShouldCopyFromDefaults is the single copy-decision predicate consulted by
// every construction path. It reports whether a property's value must be
// deep-copied from the CDO into a fresh instance.
//
// A property is skipped when it carries defaults_only (its value lives solely
// on the CDO), or when it is transient and holds no instanced sub-object
// data (transient state is rebuilt at runtime, so copying its default would
// be wasted work).
func ShouldCopyFromDefaults(p *PropertyDefinition, b propflag.Builtins) bool {
	if p.Flags.Has(b.DefaultsOnly) {
		return false
	}
	if p.Flags.Has(b.Transient) && !p.Flags.Has(b.Instanced) {
		return false
	}
	return true
}

// InCustomPropertyList reports whether a property belongs in an extended
// class's custom property list, the filtered subset driving the explicit
// post-construction copy pass.
//
// The list starts from the same predicate the native initializer uses, then
// drops config-sourced properties (the configuration layer writes those) and
// transient properties with instanced sub-objects (the sub-object instancing
// pass owns those).
func InCustomPropertyList(p *PropertyDefinition, b propflag.Builtins) bool {
	if !ShouldCopyFromDefaults(p, b) {
		return false
	}
	if p.Flags.Has(b.Config) {
		return false
	}
	if p.Flags.Has(b.Transient) && p.Flags.Has(b.Instanced) {
		return false
	}
	return true
}
