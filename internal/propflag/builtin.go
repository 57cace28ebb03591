package propflag

// Annotation keywords recognized by the declaration parser. Each maps to one
// built-in flag bit.
const (
	KeywordTransient    = "transient"
	KeywordInstanced    = "instanced"
	KeywordConfig       = "config"
	KeywordDefaultsOnly = "defaults_only"
	KeywordHidden       = "hidden"
)

// builtinKeywords is the canonical registration order of the built-in flags.
// It must not change between releases: bit positions are part of the snapshot
// format.
var builtinKeywords = []string{
	KeywordTransient,
	KeywordInstanced,
	KeywordConfig,
	KeywordDefaultsOnly,
	KeywordHidden,
}

// Builtins holds the resolved flag bits every class system recognizes.
type Builtins struct {
	// Transient excludes the property from default copying unless Instanced
	// is also set.
	Transient Flag

	// Instanced marks a property holding nested owned sub-object data that
	// still needs per-instance copying even when transient.
	Instanced Flag

	// Config marks a property whose value is sourced from the external
	// configuration layer rather than the CDO.
	Config Flag

	// DefaultsOnly marks a property whose value lives solely on the CDO and
	// is never deep-copied into instances.
	DefaultsOnly Flag

	// Hidden removes the property from editor surfaces. It has no effect on
	// construction and exists to prove flags combine by conjunction.
	Hidden Flag
}

// NewBuiltin creates a registry pre-populated with the built-in flags in
// their canonical order.
func NewBuiltin() (*Registry, Builtins) {
	r := New()
	resolved := make([]Flag, len(builtinKeywords))
	for i, kw := range builtinKeywords {
		f, err := r.Register(kw)
		if err != nil {
			// Five flags never exhaust a 64-bit mask.
			panic(err)
		}
		resolved[i] = f
	}
	return r, Builtins{
		Transient:    resolved[0],
		Instanced:    resolved[1],
		Config:       resolved[2],
		DefaultsOnly: resolved[3],
		Hidden:       resolved[4],
	}
}
