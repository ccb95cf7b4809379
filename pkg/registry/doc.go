// Package registry provides a generic, type-safe registry keyed by name.
// Iteration is always in lexicographic name order, which is what gives
// extractor and profile selection a deterministic outcome.
package registry
