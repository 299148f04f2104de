// Package store defines the storage interfaces the panel's handlers
// depend on: the persisted panel selection, principal permission
// checks, and generic record CRUD keyed by model descriptor.
//
// The gorm subpackage provides the PostgreSQL-backed implementations;
// tests substitute testify mocks.
package store
