package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/modeladmin/madmin/pkg/identity"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// fakeSelection is an in-memory SelectionStore. Update runs the
// callback against the current list the way the transactional store
// does.
type fakeSelection struct {
	current []string
	err     error
}

func (f *fakeSelection) Load() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.current...), nil
}

func (f *fakeSelection) Save(identifiers []string) error {
	if f.err != nil {
		return f.err
	}
	f.current = append([]string(nil), identifiers...)
	return nil
}

func (f *fakeSelection) Update(fn func(current []string) ([]string, error)) error {
	if f.err != nil {
		return f.err
	}
	next, err := fn(append([]string(nil), f.current...))
	if err != nil {
		return err
	}
	f.current = next
	return nil
}

// fakePermissions is an in-memory PermissionStore.
type fakePermissions struct {
	granted map[string]bool
}

func newFakePermissions(grants ...string) *fakePermissions {
	f := &fakePermissions{granted: map[string]bool{}}
	for _, g := range grants {
		f.granted[g] = true
	}
	return f
}

func grantKey(principalID, permission string) string {
	return principalID + "|" + permission
}

func (f *fakePermissions) HasPermission(principalID, permission string) bool {
	return f.granted[grantKey(principalID, permission)]
}

func (f *fakePermissions) Grant(principalID, permission string) error {
	f.granted[grantKey(principalID, permission)] = true
	return nil
}

func (f *fakePermissions) Revoke(principalID, permission string) error {
	delete(f.granted, grantKey(principalID, permission))
	return nil
}

// fakeInstances is an in-memory InstanceStore keyed by model identifier.
type fakeInstances struct {
	rows   map[string][]map[string]interface{}
	nextPK map[string]int64
	err    error
}

func newFakeInstances() *fakeInstances {
	return &fakeInstances{
		rows:   map[string][]map[string]interface{}{},
		nextPK: map[string]int64{},
	}
}

// seed inserts rows without going through Create, for test setup.
func (f *fakeInstances) seed(desc *registry.Descriptor, rows ...map[string]interface{}) {
	for _, row := range rows {
		f.nextPK[desc.ID()]++
		stored := map[string]interface{}{desc.PK: f.nextPK[desc.ID()]}
		for k, v := range row {
			stored[k] = v
		}
		f.rows[desc.ID()] = append(f.rows[desc.ID()], stored)
	}
}

func (f *fakeInstances) List(desc *registry.Descriptor) ([]map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]map[string]interface{}(nil), f.rows[desc.ID()]...), nil
}

func (f *fakeInstances) Get(desc *registry.Descriptor, pk int64) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, row := range f.rows[desc.ID()] {
		if row[desc.PK] == pk {
			return row, nil
		}
	}
	return nil, fmt.Errorf("%s/%d: %w", desc.ID(), pk, store.ErrNoRow)
}

func (f *fakeInstances) Create(desc *registry.Descriptor, values map[string]interface{}) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seed(desc, values)
	rows := f.rows[desc.ID()]
	return rows[len(rows)-1], nil
}

func (f *fakeInstances) Update(desc *registry.Descriptor, pk int64, values map[string]interface{}) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	existing, err := f.Get(desc, pk)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		existing[k] = v
	}
	return existing, nil
}

func (f *fakeInstances) Delete(desc *registry.Descriptor, pk int64) error {
	if f.err != nil {
		return f.err
	}
	rows := f.rows[desc.ID()]
	for i, row := range rows {
		if row[desc.PK] == pk {
			f.rows[desc.ID()] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s/%d: %w", desc.ID(), pk, store.ErrNoRow)
}

func (f *fakeInstances) Count(desc *registry.Descriptor) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.rows[desc.ID()]), nil
}

var (
	_ store.SelectionStore  = (*fakeSelection)(nil)
	_ store.PermissionStore = (*fakePermissions)(nil)
	_ store.InstanceStore   = (*fakeInstances)(nil)
)

// testRegistry mirrors the demo models wired at startup.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
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

func requestAs(method, target, principal string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if body != nil && method != http.MethodGet {
		if strings.HasPrefix(target, "/api/") {
			r.Header.Set("Content-Type", "application/json")
		} else {
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	return r.WithContext(identity.Set(r.Context(), identity.New(principal)))
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func formBody(values url.Values) io.Reader {
	return strings.NewReader(values.Encode())
}
