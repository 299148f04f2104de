package main

import "github.com/modeladmin/madmin/pkg/registry"

// buildRegistry wires the models the panel administers. The field
// lists must match the tables created by the migrations.
func buildRegistry() *registry.Registry {
	reg := registry.New()
	reg.MustRegister(registry.Descriptor{
		Namespace: "notes",
		Name:      "Note",
		Table:     "notes",
		Fields: []registry.Field{
			{Name: "title", Kind: registry.FieldKindText, Required: true, MaxLength: 200},
			{Name: "body", Kind: registry.FieldKindText},
			{Name: "pinned", Kind: registry.FieldKindBoolean},
			{Name: "created_at", Kind: registry.FieldKindDatetime},
		},
	})
	reg.MustRegister(registry.Descriptor{
		Namespace: "notes",
		Name:      "Tag",
		Table:     "tags",
		Fields: []registry.Field{
			{Name: "name", Kind: registry.FieldKindText, Required: true, MaxLength: 50},
			{Name: "note_id", Kind: registry.FieldKindForeignKey, Required: true},
		},
	})
	return reg
}
