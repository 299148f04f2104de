package endpoints

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/modeladmin/madmin/pkg/config"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/schema"
	"github.com/modeladmin/madmin/pkg/server"
	"github.com/modeladmin/madmin/pkg/server/store"
)

type objectListView struct {
	modelView
	CanAdd    bool
	CanChange bool
	CanDelete bool
}

type objectFormView struct {
	Identifier string
	Title      string
	Action     string
	Fields     []schema.Field
	Editing    bool
}

// resolveModelUI resolves the {model} path segment. An identifier that
// does not resolve sends the browser back to the dashboard.
func resolveModelUI(reg *registry.Registry, w http.ResponseWriter, r *http.Request) (*registry.Descriptor, bool) {
	desc, err := reg.Get(mux.Vars(r)["model"])
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	return desc, true
}

// checkActionPermission enforces the per-model permission for an action
// and writes the 403 itself.
func checkActionPermission(perms store.PermissionStore, w http.ResponseWriter, principal string, desc *registry.Descriptor, action string) bool {
	if !perms.HasPermission(principal, desc.Permission(action)) {
		http.Error(w, "you don't have permission to "+action+" "+desc.ID(), http.StatusForbidden)
		return false
	}
	return true
}

func pathPK(r *http.Request) int64 {
	pk, _ := strconv.ParseInt(mux.Vars(r)["pk"], 10, 64)
	return pk
}

// formValues flattens a parsed form into the single-value map the
// schema binder accepts.
func formValues(form url.Values) map[string]string {
	values := make(map[string]string, len(form))
	for k := range form {
		values[k] = form.Get(k)
	}
	return values
}

// backfillCheckboxes adds an empty entry for every boolean field the
// form body omits. Browsers drop unchecked checkboxes from the
// submission, so on a rendered form an absent boolean means false, not
// "leave unchanged".
func backfillCheckboxes(desc *registry.Descriptor, values map[string]string) map[string]string {
	for _, f := range desc.Fields {
		if f.Kind != registry.FieldKindBoolean {
			continue
		}
		if _, ok := values[f.Name]; !ok {
			values[f.Name] = ""
		}
	}
	return values
}

func renderForm(w http.ResponseWriter, statusCode int, desc *registry.Descriptor, s *schema.Schema, action string, editing bool) {
	renderPage(w, statusCode, "object_form.html", objectFormView{
		Identifier: desc.ID(),
		Title:      desc.Name,
		Action:     action,
		Fields:     s.Fields,
		Editing:    editing,
	})
}

// ObjectList serves the paginated listing of one model's records. Any
// principal with panel access may view it; the add/edit/delete links
// only render for principals holding the matching permission.
func ObjectList(reg *registry.Registry, cfg *config.Config, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccess(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelUI(reg, w, r)
		if !ok {
			return
		}

		mv, err := buildModelView(instances, desc, cfg.ObjectListPageSize, r.URL.Query().Get("page"))
		if err != nil {
			log.Printf("object list %s: %v", desc.ID(), err)
			http.Error(w, "could not load records", http.StatusInternalServerError)
			return
		}

		renderPage(w, http.StatusOK, "object_list.html", objectListView{
			modelView: mv,
			CanAdd:    perms.HasPermission(principal, desc.Permission("add")),
			CanChange: perms.HasPermission(principal, desc.Permission("change")),
			CanDelete: perms.HasPermission(principal, desc.Permission("delete")),
		})
	}
}

// ObjectCreate serves the create form. GET renders an empty form, POST
// validates and inserts, re-rendering the form with field errors on
// invalid input.
func ObjectCreate(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccess(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelUI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermission(perms, w, principal, desc, "add") {
			return
		}

		s := schema.Build(desc)
		action := "/create/" + desc.ID()
		if r.Method == http.MethodGet {
			renderForm(w, http.StatusOK, desc, s, action, false)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form body", http.StatusBadRequest)
			return
		}
		values, errs := s.Bind(backfillCheckboxes(desc, formValues(r.PostForm)), nil)
		if errs != nil {
			renderForm(w, http.StatusBadRequest, desc, s, action, false)
			return
		}
		if _, err := instances.Create(desc, values); err != nil {
			log.Printf("create %s: %v", desc.ID(), err)
			http.Error(w, "could not create record", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/objects/"+desc.ID(), http.StatusFound)
	}
}

// ObjectEdit serves the edit form for one record. GET renders the form
// prefilled from the stored record, POST validates the submitted fields
// merged over it and updates.
func ObjectEdit(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccess(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelUI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermission(perms, w, principal, desc, "change") {
			return
		}

		pk := pathPK(r)
		existing, err := instances.Get(desc, pk)
		if err != nil {
			if errors.Is(err, store.ErrNoRow) {
				http.NotFound(w, r)
				return
			}
			log.Printf("edit %s/%d: %v", desc.ID(), pk, err)
			http.Error(w, "could not load record", http.StatusInternalServerError)
			return
		}

		s := schema.Build(desc)
		action := "/objects/" + desc.ID() + "/" + strconv.FormatInt(pk, 10) + "/edit"
		if r.Method == http.MethodGet {
			s.SetInitial(existing)
			renderForm(w, http.StatusOK, desc, s, action, true)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form body", http.StatusBadRequest)
			return
		}
		values, errs := s.Bind(backfillCheckboxes(desc, formValues(r.PostForm)), existing)
		if errs != nil {
			renderForm(w, http.StatusBadRequest, desc, s, action, true)
			return
		}
		if _, err := instances.Update(desc, pk, values); err != nil {
			log.Printf("update %s/%d: %v", desc.ID(), pk, err)
			http.Error(w, "could not update record", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/objects/"+desc.ID(), http.StatusFound)
	}
}

// ObjectDelete deletes one record and sends the browser back to the
// listing.
func ObjectDelete(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccess(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelUI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermission(perms, w, principal, desc, "delete") {
			return
		}

		pk := pathPK(r)
		if err := instances.Delete(desc, pk); err != nil {
			if errors.Is(err, store.ErrNoRow) {
				http.NotFound(w, r)
				return
			}
			log.Printf("delete %s/%d: %v", desc.ID(), pk, err)
			http.Error(w, "could not delete record", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/objects/"+desc.ID(), http.StatusFound)
	}
}

// RegisterRecords wires the server-rendered CRUD routes.
func RegisterRecords(s *server.Server) {
	s.Router.HandleFunc("/objects/"+modelPattern,
		ObjectList(s.Registry, s.Config, s.Permissions, s.Instances)).Methods("GET")
	s.Router.HandleFunc("/create/"+modelPattern,
		ObjectCreate(s.Registry, s.Permissions, s.Instances)).Methods("GET", "POST")
	s.Router.HandleFunc("/objects/"+modelPattern+"/{pk:[0-9]+}/edit",
		ObjectEdit(s.Registry, s.Permissions, s.Instances)).Methods("GET", "POST")
	s.Router.HandleFunc("/objects/"+modelPattern+"/{pk:[0-9]+}delete",
		ObjectDelete(s.Registry, s.Permissions, s.Instances)).Methods("GET")
}
