package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an identifier does not resolve to a
// registered model.
var ErrNotFound = errors.New("model not found")

// Field describes one editable column of a registered model.
type Field struct {
	Name      string
	Kind      FieldKind
	Required  bool
	MaxLength int
}

// Descriptor is an immutable snapshot of a registered model: its
// namespace, name, backing table and ordered field list. The primary
// key column is not part of Fields.
type Descriptor struct {
	Namespace string
	Name      string
	Table     string
	PK        string
	Fields    []Field
}

// ID returns the model identifier, "namespace.Name".
func (d *Descriptor) ID() string {
	return d.Namespace + "." + d.Name
}

// Permission returns the permission string gating the given action on
// this model, "<namespace>.<action>_<modelnamelower>".
func (d *Descriptor) Permission(action string) string {
	return strings.ToLower(d.Namespace) + "." + action + "_" + strings.ToLower(d.Name)
}

// Registry maps model identifiers to descriptors. It is populated once
// at process start and treated as read-only afterwards; no locking is
// provided.
type Registry struct {
	byKey map[string]*Descriptor
	order []*Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byKey: map[string]*Descriptor{}}
}

func key(namespace, name string) string {
	// The namespace segment is case-insensitive, the model name is not.
	return strings.ToLower(namespace) + "." + name
}

// Register adds a model descriptor. Registration order is preserved by
// All. Registering the same identifier twice is an error.
func (r *Registry) Register(d Descriptor) error {
	if d.Namespace == "" || d.Name == "" {
		return fmt.Errorf("descriptor requires namespace and name, got %q", d.ID())
	}
	if d.PK == "" {
		d.PK = "id"
	}
	k := key(d.Namespace, d.Name)
	if _, ok := r.byKey[k]; ok {
		return fmt.Errorf("model %s already registered", d.ID())
	}
	desc := d
	r.byKey[k] = &desc
	r.order = append(r.order, &desc)
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get resolves a "namespace.Name" identifier to its descriptor. The
// namespace segment is matched case-insensitively. Returns ErrNotFound
// for malformed or unknown identifiers.
func (r *Registry) Get(identifier string) (*Descriptor, error) {
	parts := strings.SplitN(identifier, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: malformed identifier %q", ErrNotFound, identifier)
	}
	d, ok := r.byKey[key(parts[0], parts[1])]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}
	return d, nil
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}
