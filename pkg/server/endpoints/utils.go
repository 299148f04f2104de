package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/modeladmin/madmin/pkg/identity"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/schema"
	"github.com/modeladmin/madmin/pkg/server/store"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// principalID extracts the authenticated principal from the request
// context. The auth middleware guarantees it is present on every
// registered route.
func principalID(r *http.Request) (string, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		return "", false
	}
	return id.PrincipalID, true
}

// checkPanelAccess enforces the panel-wide access permission. It
// writes the failure response itself and reports whether the caller
// may proceed.
func checkPanelAccess(perms store.PermissionStore, w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := principalID(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return "", false
	}
	if !perms.HasPermission(principal, store.AccessPanelPermission) {
		http.Error(w, "you don't have access to the admin panel", http.StatusForbidden)
		return "", false
	}
	return principal, true
}

// checkPanelAccessJSON is checkPanelAccess with JSON failure bodies,
// for the REST surface.
func checkPanelAccessJSON(perms store.PermissionStore, w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := principalID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	if !perms.HasPermission(principal, store.AccessPanelPermission) {
		respondWithError(w, http.StatusForbidden, "you don't have access to the admin panel")
		return "", false
	}
	return principal, true
}

// pkValue pulls the primary key out of a record row as an int64.
func pkValue(desc *registry.Descriptor, row map[string]interface{}) int64 {
	switch v := row[desc.PK].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// cellValues renders a record row into display strings, primary key
// first, then fields in descriptor order.
func cellValues(desc *registry.Descriptor, row map[string]interface{}) []string {
	cells := make([]string, 0, len(desc.Fields)+1)
	cells = append(cells, strconv.FormatInt(pkValue(desc, row), 10))
	for _, f := range desc.Fields {
		cells = append(cells, schema.Format(f.Kind, row[f.Name]))
	}
	return cells
}

// columnNames returns the table header for a model listing.
func columnNames(desc *registry.Descriptor) []string {
	names := make([]string, 0, len(desc.Fields)+1)
	names = append(names, desc.PK)
	for _, f := range desc.Fields {
		names = append(names, f.Name)
	}
	return names
}

// stringifyBody flattens a decoded JSON object into the submitted-value
// form the schema binder accepts.
func stringifyBody(body map[string]interface{}) map[string]string {
	values := make(map[string]string, len(body))
	for k, v := range body {
		switch t := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = t
		case bool:
			values[k] = strconv.FormatBool(t)
		case float64:
			values[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			values[k] = fmt.Sprintf("%v", t)
		}
	}
	return values
}
