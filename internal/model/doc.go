// Package model provides the format-agnostic, in-memory representation of
// class declarations. Its core purpose is to turn raw HCL blocks into
// strongly-typed descriptors that the class system can register.
//
// # Core Concepts
//
//   - ClassDefinition: the declared shape of one class, meaning its name,
//     the class it extends, and its ordered property definitions.
//
//   - PropertyDefinition: static metadata for one declared property: name,
//     cty type, optional default value, and the behavioral flag mask. A
//     definition is immutable once parsing finishes; it is owned by exactly
//     one ClassDefinition.
//
// Why a separate model package?
//
// The HCL surface and the registration semantics evolve at different speeds.
// By parsing declarations into this neutral layer first, the class system
// never touches hcl.Body values, and structural problems (unknown annotation
// keywords, ill-typed defaults, duplicate properties) are diagnosed with
// source ranges before any class is registered.
//
// The copy-decision predicates also live here, next to the flag definitions
// they read. Both construction paths (the native initializer and the
// custom-property-list pass for extended classes) must call the same
// predicate, so it is defined once and exported.
package model
