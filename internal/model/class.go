package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/classkit/internal/propflag"
	"github.com/vk/classkit/internal/schema"
)

// ClassDefinition is the format-agnostic representation of one `class` block.
type ClassDefinition struct {
	// Name is the class name, taken from the HCL block label.
	Name string

	// Extends names the base class, or is empty for a root class.
	Extends string

	// Properties are the class's own property definitions in declaration
	// order. Inherited properties are not repeated here; the class system
	// assembles the full chain at registration time.
	Properties []*PropertyDefinition
}

// Property returns the class's own property definition with the given name.
func (c *ClassDefinition) Property(name string) (*PropertyDefinition, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// classBodySchema is the HCL schema for the body of a `class` block, after
// gohcl has consumed the `extends` attribute.
var classBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "property", LabelNames: []string{"name"}},
	},
}

// DecodeClass translates a raw schema.Class into a ClassDefinition,
// resolving annotation keywords against the flag registry. Any diagnostic
// error means the declaring class must not register.
func DecodeClass(raw *schema.Class, flags *propflag.Registry) (*ClassDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	bodyContent, contentDiags := raw.Body.Content(classBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	def := &ClassDefinition{
		Name:    raw.Name,
		Extends: raw.Extends,
	}

	seen := make(map[string]struct{})
	for _, block := range bodyContent.Blocks {
		propName := block.Labels[0]
		if _, exists := seen[propName]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate property definition",
				Detail:   fmt.Sprintf("A property named '%s' has already been defined on class '%s'.", propName, raw.Name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[propName] = struct{}{}

		prop, propDiags := parseProperty(block, flags)
		diags = append(diags, propDiags...)
		if propDiags.HasErrors() {
			continue
		}
		def.Properties = append(def.Properties, prop)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return def, diags
}
