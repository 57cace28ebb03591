package object

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts a cty value into the native slot representation. Null
// values become the zero value of their type, so a `default = null`
// declaration behaves like an omitted default.
func FromCty(val cty.Value) (any, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("object: cannot convert unknown value of type %s", val.Type().FriendlyName())
	}
	if val.IsNull() {
		return Zero(val.Type()), nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil

	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil

	case ty == cty.Bool:
		return val.True(), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := FromCty(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for k, v := range val.AsValueMap() {
			native, err := FromCty(v)
			if err != nil {
				return nil, err
			}
			out[k] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("object: unsupported value type %s", ty.FriendlyName())
	}
}

// Zero returns the freshly-constructed default for a declared type: empty
// string/zero number/false for primitives, an empty container for collection
// and object types, nil for dynamic.
func Zero(ty cty.Type) any {
	switch {
	case ty == cty.String:
		return ""
	case ty == cty.Number:
		return float64(0)
	case ty == cty.Bool:
		return false
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		return []any{}
	case ty.IsMapType() || ty.IsObjectType():
		return map[string]any{}
	default:
		return nil
	}
}

// DeepCopy returns an independently-owned copy of a native slot value.
// Mutating the copy must never be observable through the original.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = DeepCopy(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = DeepCopy(elem)
		}
		return out
	default:
		// Primitives and nil are value-copied.
		return v
	}
}

// Conforms reports whether a native slot value has the shape its declared
// type requires. It is the structural check guarding the copy paths; a
// failure there means the class layout is corrupted.
func Conforms(v any, ty cty.Type) bool {
	if ty == cty.DynamicPseudoType {
		return true
	}
	switch v.(type) {
	case string:
		return ty == cty.String
	case float64:
		return ty == cty.Number
	case bool:
		return ty == cty.Bool
	case []any:
		return ty.IsListType() || ty.IsSetType() || ty.IsTupleType()
	case map[string]any:
		return ty.IsMapType() || ty.IsObjectType()
	case nil:
		return false
	default:
		return false
	}
}
