package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/classkit/internal/ckhcl"
	"github.com/vk/classkit/internal/propflag"
)

// PropertyDefinition holds the fully parsed and type-checked definition of a
// declared property.
type PropertyDefinition struct {
	// Name is the property name, taken from the HCL block label.
	Name string

	// Type is the declared value type.
	Type cty.Type

	// Description is an optional string documenting the property.
	Description string

	// Default is an optional literal default value, already converted to
	// Type. Nil means the property defaults to its type's zero value.
	Default *cty.Value

	// Flags is the behavioral flag mask assembled from annotation keywords.
	Flags propflag.Mask

	// Offset is the slot index within the instance layout. It is assigned by
	// the class system at registration time and immutable afterwards.
	Offset int

	// DeclRange points at the declaring block for diagnostics.
	DeclRange hcl.Range
}

// propertyBodySchema is the HCL schema for the body of a `property` block.
var propertyBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is required, but we check for its existence manually to
		// provide a better error message.
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
		{Name: "flags"},
	},
}

// parseProperty decodes a single `property` block into a definition.
func parseProperty(block *hcl.Block, flags *propflag.Registry) (*PropertyDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// The block schema guarantees one label.
	name := block.Labels[0]

	bodyContent, contentDiags := block.Body.Content(propertyBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	typeAttr, exists := bodyContent.Attributes["type"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all property blocks.",
			Subject:  &missingItemRange,
		})
		return nil, diags
	}

	ctyType, typeDiags := ckhcl.TypeConstraint(typeAttr.Expr)
	diags = append(diags, typeDiags...)
	if typeDiags.HasErrors() {
		return nil, diags
	}

	var description string
	if descAttr, exists := bodyContent.Attributes["description"]; exists {
		evalDiags := gohcl.DecodeExpression(descAttr.Expr, nil, &description)
		diags = append(diags, evalDiags...)
	}

	mask, flagDiags := parseFlagKeywords(bodyContent.Attributes["flags"], flags)
	diags = append(diags, flagDiags...)
	if flagDiags.HasErrors() {
		return nil, diags
	}

	if do, ok := flags.Lookup(propflag.KeywordDefaultsOnly); ok && mask.Has(do) && ctyType.IsPrimitiveType() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid specifier target",
			Detail: fmt.Sprintf("The '%s' specifier cannot be applied to property '%s': a %s slot shares no heap-backed payload. Only collection, object, or dynamic types may be CDO-only.",
				propflag.KeywordDefaultsOnly, name, ctyType.FriendlyName()),
			Subject: &block.DefRange,
		})
		return nil, diags
	}

	var defaultValue *cty.Value
	if defaultAttr, exists := bodyContent.Attributes["default"]; exists {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := defaultAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return nil, diags
		}

		// Literal collections parse as tuples/objects; conversion both checks
		// conformance with the declared type and normalizes the value.
		converted, err := convert.Convert(val, ctyType)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid default value type",
				Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s': %s.", name, ctyType.FriendlyName(), err),
				Subject:  defaultAttr.Expr.Range().Ptr(),
			})
			return nil, diags
		}
		defaultValue = &converted
	}

	return &PropertyDefinition{
		Name:        name,
		Type:        ctyType,
		Description: description,
		Default:     defaultValue,
		Flags:       mask,
		Offset:      -1,
		DeclRange:   block.DefRange,
	}, diags
}

// parseFlagKeywords resolves the `flags` attribute's keyword list against the
// flag registry. Unrecognized keywords are declaration errors, never silently
// ignored: every annotation must have defined behavior.
func parseFlagKeywords(attr *hcl.Attribute, flags *propflag.Registry) (propflag.Mask, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var mask propflag.Mask

	if attr == nil {
		return 0, nil
	}

	var keywords []string
	evalDiags := gohcl.DecodeExpression(attr.Expr, nil, &keywords)
	diags = append(diags, evalDiags...)
	if evalDiags.HasErrors() {
		return 0, diags
	}

	for _, kw := range keywords {
		f, ok := flags.Lookup(kw)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown property specifier",
				Detail:   fmt.Sprintf("The specifier '%s' is not registered. Known specifiers are: %v.", kw, flags.Names()),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		mask = mask.With(f)
	}

	return mask, diags
}
