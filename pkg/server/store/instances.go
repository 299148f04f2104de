package store

import (
	"errors"

	"github.com/modeladmin/madmin/pkg/registry"
)

// ErrNoRow is returned when a primary key does not resolve to a record.
var ErrNoRow = errors.New("record not found")

// InstanceStore provides generic CRUD over the records of any
// registered model, addressed by descriptor. Rows travel as value maps
// keyed by column name; the store never caches them and mutating
// operations re-read state rather than trusting the caller's copy.
type InstanceStore interface {
	// List returns all records of the model in primary-key order.
	List(desc *registry.Descriptor) ([]map[string]interface{}, error)

	// Get fetches one record by primary key, ErrNoRow if absent.
	Get(desc *registry.Descriptor, pk int64) (map[string]interface{}, error)

	// Create inserts a record and returns it as stored.
	Create(desc *registry.Descriptor, values map[string]interface{}) (map[string]interface{}, error)

	// Update overwrites the record's fields and returns it as stored.
	// ErrNoRow if the primary key is absent.
	Update(desc *registry.Descriptor, pk int64, values map[string]interface{}) (map[string]interface{}, error)

	// Delete removes the record, ErrNoRow if the primary key is absent.
	Delete(desc *registry.Descriptor, pk int64) error

	// Count returns the number of records of the model.
	Count(desc *registry.Descriptor) (int, error)
}
