// Package app wires the classkit pipeline together: it configures logging,
// loads class declarations, registers them into a class system, verifies
// each class constructs, and optionally writes a CBOR snapshot of the
// resulting registry.
package app
