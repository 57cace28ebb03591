// Package classsys owns the class-system context: the class table, canonical
// class-default objects (CDOs), and both construction paths.
//
// # Lifecycle
//
// Registration is a one-time, single-threaded bootstrap phase: callers
// register class definitions in base-before-derived order (or hand a batch to
// RegisterAll, which orders them). Register resolves the inheritance chain,
// assigns slot offsets, builds the custom property list for extended classes,
// and constructs the CDO. Concurrent registration is unsupported and must be
// serialized by the caller.
//
// After registration a class, its property chain, and its CDO are read-only.
// NewInstance may therefore be called concurrently from any number of
// goroutines with no locking: every construction only reads the descriptor
// and the sealed CDO.
//
// # Construction
//
// NewInstance initializes every slot to its type's zero value, then copies
// defaults from the CDO. For the class's native portion the initializer walks
// the chain directly; for classes extended outside the native path the custom
// property list drives a second, structurally identical pass. Both call sites
// share one predicate, model.ShouldCopyFromDefaults, so a defaults-only
// property is skipped by every path and its payload exists exactly once per
// process, on the CDO.
package classsys
