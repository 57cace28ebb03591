// Package ckhcl contains small bridges between HCL expressions and the cty
// type system that don't belong to any one consumer.
package ckhcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// TypeConstraint converts an HCL expression that represents a type (the
// `string` keyword, a `list(string)` call, an `object({...})` call) into its
// corresponding cty.Type.
func TypeConstraint(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	// A bare keyword like `string` parses as a traversal.
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		return primitiveType(traversal.RootName(), expr)
	}

	// Everything else must be a type constructor call: list(...), set(...),
	// map(...), object({...}).
	call, diags := hcl.ExprCall(expr)
	if diags.HasErrors() {
		return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "A type must be a keyword like 'string' or a constructor call like 'list(string)', not a general expression.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	switch call.Name {
	case "list", "set", "map":
		if len(call.Arguments) != 1 {
			return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid type specification",
				Detail:   fmt.Sprintf("The '%s' type constructor takes exactly one argument.", call.Name),
				Subject:  expr.Range().Ptr(),
			}}
		}
		elemType, diags := TypeConstraint(call.Arguments[0])
		if diags.HasErrors() {
			return cty.NilType, diags
		}
		switch call.Name {
		case "list":
			return cty.List(elemType), nil
		case "set":
			return cty.Set(elemType), nil
		default:
			return cty.Map(elemType), nil
		}

	case "object":
		if len(call.Arguments) != 1 {
			return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid type specification",
				Detail:   "The 'object' type constructor takes exactly one argument: a map of attribute names to types.",
				Subject:  expr.Range().Ptr(),
			}}
		}
		return objectType(call.Arguments[0])

	default:
		return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type constructor",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type constructor. Supported constructors are: list, set, map, object.", call.Name),
			Subject:  expr.Range().Ptr(),
		}}
	}
}

// primitiveType maps a bare type keyword to its cty primitive.
func primitiveType(name string, expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	switch name {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	default:
		return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: string, number, bool, any, list(T), set(T), map(T), object({...}).", name),
			Subject:  expr.Range().Ptr(),
		}}
	}
}

// objectType builds a cty object type from the `{name = type, ...}` argument
// of an object(...) constructor.
func objectType(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return cty.NilType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The argument to 'object' must be a map of attribute names to types, like object({name = string}).",
			Subject:  expr.Range().Ptr(),
		}}
	}

	attrTypes := make(map[string]cty.Type, len(pairs))
	for _, pair := range pairs {
		name, nameDiags := attributeName(pair.Key)
		if nameDiags.HasErrors() {
			return cty.NilType, nameDiags
		}
		attrType, typeDiags := TypeConstraint(pair.Value)
		if typeDiags.HasErrors() {
			return cty.NilType, typeDiags
		}
		attrTypes[name] = attrType
	}
	return cty.Object(attrTypes), nil
}

// attributeName extracts a static attribute name from an object-type key
// expression, accepting both bare keywords and quoted strings.
func attributeName(expr hcl.Expression) (string, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		return traversal.RootName(), nil
	}
	val, diags := expr.Value(nil)
	if !diags.HasErrors() && val.Type() == cty.String && !val.IsNull() {
		return val.AsString(), nil
	}
	return "", hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid type specification",
		Detail:   "Object attribute names must be static identifiers or string literals.",
		Subject:  expr.Range().Ptr(),
	}}
}
