// Package propflag implements the property-flag registry: a fixed-width
// bitmask of per-property behaviors, assigned once during class-system
// bootstrap and read-only afterwards.
package propflag

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
)

// MaskWidth is the number of distinct flags a registry can hold.
const MaskWidth = 64

// Flag is a single registered flag bit. The zero value is not a valid flag.
type Flag uint64

// Mask is the combined flag field stored on a property descriptor.
type Mask uint64

// Has reports whether the mask carries the given flag.
func (m Mask) Has(f Flag) bool {
	return uint64(m)&uint64(f) != 0
}

// With returns a copy of the mask with the given flag set.
func (m Mask) With(f Flag) Mask {
	return m | Mask(f)
}

// ErrCapacityExceeded is returned when a registration would exceed MaskWidth
// bits. The registry is left unchanged; callers must treat this as fatal to
// class-system bootstrap.
var ErrCapacityExceeded = errors.New("propflag: flag capacity exceeded")

// Registry assigns bit positions to flag names. It is an explicit object
// rather than package-level state so that independent class systems can
// coexist in one process.
//
// Registration is not safe for concurrent use; it belongs to the
// single-threaded bootstrap phase. Lookups after bootstrap are read-only and
// need no locking.
type Registry struct {
	byName map[string]Flag
	names  []string // index == bit position
}

// New creates an empty flag registry.
func New() *Registry {
	return &Registry{byName: make(map[string]Flag)}
}

// Register assigns the next free bit to name and returns the resulting flag.
// Registering a name twice is idempotent and returns the original flag.
func (r *Registry) Register(name string) (Flag, error) {
	if f, ok := r.byName[name]; ok {
		return f, nil
	}
	if len(r.names) >= MaskWidth {
		return 0, fmt.Errorf("cannot register flag %q: %w (%d bits in use)", name, ErrCapacityExceeded, len(r.names))
	}
	f := Flag(1) << uint(len(r.names))
	r.byName[name] = f
	r.names = append(r.names, name)
	return f, nil
}

// RegisterAll registers a batch of flag names. The batch is sorted
// lexicographically before bits are assigned, so declarations gathered from
// multiple sites produce the same bit layout on every rebuild. Registration
// is all-or-nothing: if the batch would exceed MaskWidth the registry is left
// untouched.
func (r *Registry) RegisterAll(names ...string) error {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	fresh := 0
	seen := make(map[string]struct{}, len(sorted))
	for _, name := range sorted {
		if _, ok := r.byName[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fresh++
	}
	if len(r.names)+fresh > MaskWidth {
		return fmt.Errorf("cannot register %d new flags: %w (%d bits in use)", fresh, ErrCapacityExceeded, len(r.names))
	}

	for _, name := range sorted {
		if _, err := r.Register(name); err != nil {
			// Unreachable after the capacity pre-check.
			return err
		}
	}
	return nil
}

// Lookup returns the flag registered under name.
func (r *Registry) Lookup(name string) (Flag, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Name returns the name registered for a flag bit.
func (r *Registry) Name(f Flag) (string, bool) {
	bit := bits.TrailingZeros64(uint64(f))
	if f == 0 || bit >= len(r.names) {
		return "", false
	}
	return r.names[bit], true
}

// Names returns all registered names in bit order. The returned slice is a
// snapshot for diagnostics.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Count returns the number of registered flags.
func (r *Registry) Count() int {
	return len(r.names)
}
