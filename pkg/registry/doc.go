// Package registry holds the process-wide model registry.
//
// A Descriptor is the metadata the panel needs to expose a model
// generically: its "namespace.Name" identifier, backing table, primary
// key column and ordered field list. The registry is built once at
// startup (see cmd/madmin) and every request resolves identifiers
// against it; an identifier that no longer resolves fails closed with
// ErrNotFound.
package registry
