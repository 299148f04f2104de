package endpoints

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/schema"
	"github.com/modeladmin/madmin/pkg/server"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// resolveModelAPI resolves the {model} path segment for the REST
// surface. Unknown identifiers are indistinguishable from missing
// resources.
func resolveModelAPI(reg *registry.Registry, w http.ResponseWriter, r *http.Request) (*registry.Descriptor, bool) {
	desc, err := reg.Get(mux.Vars(r)["model"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, "model not found")
		return nil, false
	}
	return desc, true
}

func checkActionPermissionJSON(perms store.PermissionStore, w http.ResponseWriter, principal string, desc *registry.Descriptor, action string) bool {
	if !perms.HasPermission(principal, desc.Permission(action)) {
		respondWithError(w, http.StatusForbidden, "you don't have permission to "+action+" "+desc.ID())
		return false
	}
	return true
}

// decodeBody reads a JSON object request body. A body that is not a
// JSON object is a client error.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	return body, true
}

// APIList returns every record of a model.
func APIList(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkPanelAccessJSON(perms, w, r); !ok {
			return
		}
		desc, ok := resolveModelAPI(reg, w, r)
		if !ok {
			return
		}

		rows, err := instances.List(desc)
		if err != nil {
			log.Printf("api list %s: %v", desc.ID(), err)
			respondWithError(w, http.StatusInternalServerError, "could not load records")
			return
		}
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

// APICreate validates a JSON payload against the model's schema and
// inserts it.
func APICreate(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccessJSON(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelAPI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermissionJSON(perms, w, principal, desc, "add") {
			return
		}

		body, ok := decodeBody(w, r)
		if !ok {
			return
		}
		s := schema.Build(desc)
		values, errs := s.Bind(stringifyBody(body), nil)
		if errs != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
			return
		}

		created, err := instances.Create(desc, values)
		if err != nil {
			log.Printf("api create %s: %v", desc.ID(), err)
			respondWithError(w, http.StatusInternalServerError, "could not create record")
			return
		}
		respondWithJSON(w, http.StatusCreated, created)
	}
}

// APIGet returns one record by primary key.
func APIGet(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkPanelAccessJSON(perms, w, r); !ok {
			return
		}
		desc, ok := resolveModelAPI(reg, w, r)
		if !ok {
			return
		}

		row, err := instances.Get(desc, pathPK(r))
		if err != nil {
			if errors.Is(err, store.ErrNoRow) {
				respondWithError(w, http.StatusNotFound, "record not found")
				return
			}
			log.Printf("api get %s: %v", desc.ID(), err)
			respondWithError(w, http.StatusInternalServerError, "could not load record")
			return
		}
		respondWithJSON(w, http.StatusOK, row)
	}
}

// APIUpdate merges a JSON payload over the stored record and saves it.
// PUT and PATCH behave identically: absent fields keep their stored
// values.
func APIUpdate(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccessJSON(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelAPI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermissionJSON(perms, w, principal, desc, "change") {
			return
		}

		pk := pathPK(r)
		existing, err := instances.Get(desc, pk)
		if err != nil {
			if errors.Is(err, store.ErrNoRow) {
				respondWithError(w, http.StatusNotFound, "record not found")
				return
			}
			log.Printf("api update %s/%d: %v", desc.ID(), pk, err)
			respondWithError(w, http.StatusInternalServerError, "could not load record")
			return
		}

		body, ok := decodeBody(w, r)
		if !ok {
			return
		}
		s := schema.Build(desc)
		values, errs := s.Bind(stringifyBody(body), existing)
		if errs != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
			return
		}

		updated, err := instances.Update(desc, pk, values)
		if err != nil {
			log.Printf("api update %s/%d: %v", desc.ID(), pk, err)
			respondWithError(w, http.StatusInternalServerError, "could not update record")
			return
		}
		respondWithJSON(w, http.StatusOK, updated)
	}
}

// APIDelete removes one record by primary key.
func APIDelete(reg *registry.Registry, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := checkPanelAccessJSON(perms, w, r)
		if !ok {
			return
		}
		desc, ok := resolveModelAPI(reg, w, r)
		if !ok {
			return
		}
		if !checkActionPermissionJSON(perms, w, principal, desc, "delete") {
			return
		}

		pk := pathPK(r)
		if err := instances.Delete(desc, pk); err != nil {
			if errors.Is(err, store.ErrNoRow) {
				respondWithError(w, http.StatusNotFound, "record not found")
				return
			}
			log.Printf("api delete %s/%d: %v", desc.ID(), pk, err)
			respondWithError(w, http.StatusInternalServerError, "could not delete record")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RegisterAPI wires the generic REST routes.
func RegisterAPI(s *server.Server) {
	s.Router.HandleFunc("/api/"+modelPattern,
		APIList(s.Registry, s.Permissions, s.Instances)).Methods("GET")
	s.Router.HandleFunc("/api/"+modelPattern,
		APICreate(s.Registry, s.Permissions, s.Instances)).Methods("POST")
	s.Router.HandleFunc("/api/"+modelPattern+"/{pk:[0-9]+}",
		APIGet(s.Registry, s.Permissions, s.Instances)).Methods("GET")
	s.Router.HandleFunc("/api/"+modelPattern+"/{pk:[0-9]+}",
		APIUpdate(s.Registry, s.Permissions, s.Instances)).Methods("PUT", "PATCH")
	s.Router.HandleFunc("/api/"+modelPattern+"/{pk:[0-9]+}",
		APIDelete(s.Registry, s.Permissions, s.Instances)).Methods("DELETE")
}
