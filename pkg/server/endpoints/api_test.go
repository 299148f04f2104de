package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIList(t *testing.T) {
	reg := testRegistry(t)

	t.Run("unknown model is 404", func(t *testing.T) {
		handler := APIList(reg, adminPerms(), newFakeInstances())
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/gone.Model", "admin", nil),
			map[string]string{"model": "gone.Model"})
		handler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "model not found"}`, w.Body.String())
	})

	t.Run("returns every record", func(t *testing.T) {
		instances := newFakeInstances()
		seedNotes(t, reg, instances, 3)
		handler := APIList(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/notes.Note", "admin", nil),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var rows []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 3)
	})

	t.Run("no records is an empty array", func(t *testing.T) {
		handler := APIList(reg, adminPerms(), newFakeInstances())
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/notes.Note", "admin", nil),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("without panel access is 403", func(t *testing.T) {
		handler := APIList(reg, newFakePermissions(), newFakeInstances())
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/notes.Note", "nobody", nil),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAPICreate(t *testing.T) {
	reg := testRegistry(t)

	t.Run("valid payload is 201", func(t *testing.T) {
		instances := newFakeInstances()
		handler := APICreate(reg, adminPerms("add"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("POST", "/api/notes.Note", "admin",
			strings.NewReader(`{"title": "hello", "pinned": true}`)),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		var created map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "hello", created["title"])
		assert.Equal(t, float64(1), created["id"])
	})

	t.Run("non-object body is 400", func(t *testing.T) {
		instances := newFakeInstances()
		handler := APICreate(reg, adminPerms("add"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("POST", "/api/notes.Note", "admin",
			strings.NewReader(`not json`)),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		desc, _ := reg.Get("notes.Note")
		count, _ := instances.Count(desc)
		assert.Zero(t, count)
	})

	t.Run("invalid field is 400 with field errors", func(t *testing.T) {
		instances := newFakeInstances()
		handler := APICreate(reg, adminPerms("add"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("POST", "/api/notes.Note", "admin",
			strings.NewReader(`{"body": "missing title"}`)),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var out struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Contains(t, out.Errors, "title")
	})

	t.Run("without permission nothing is written", func(t *testing.T) {
		instances := newFakeInstances()
		handler := APICreate(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("POST", "/api/notes.Note", "admin",
			strings.NewReader(`{"title": "hello"}`)),
			map[string]string{"model": "notes.Note"})
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		desc, _ := reg.Get("notes.Note")
		count, _ := instances.Count(desc)
		assert.Zero(t, count)
	})
}

func TestAPIGet(t *testing.T) {
	reg := testRegistry(t)
	instances := newFakeInstances()
	desc, _ := reg.Get("notes.Note")
	instances.seed(desc, map[string]interface{}{"title": "only"})

	t.Run("found", func(t *testing.T) {
		handler := APIGet(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/notes.Note/1", "admin", nil),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var row map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
		assert.Equal(t, "only", row["title"])
	})

	t.Run("missing is 404", func(t *testing.T) {
		handler := APIGet(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("GET", "/api/notes.Note/42", "admin", nil),
			map[string]string{"model": "notes.Note", "pk": "42"})
		handler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPIUpdate(t *testing.T) {
	reg := testRegistry(t)

	t.Run("absent fields keep their stored values", func(t *testing.T) {
		instances := newFakeInstances()
		desc, _ := reg.Get("notes.Note")
		instances.seed(desc, map[string]interface{}{"title": "first", "body": "keep me"})

		handler := APIUpdate(reg, adminPerms("change"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("PATCH", "/api/notes.Note/1", "admin",
			strings.NewReader(`{"title": "renamed"}`)),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		row, err := instances.Get(desc, 1)
		require.NoError(t, err)
		assert.Equal(t, "renamed", row["title"])
		assert.Equal(t, "keep me", row["body"])
	})

	t.Run("missing record is 404", func(t *testing.T) {
		handler := APIUpdate(reg, adminPerms("change"), newFakeInstances())
		w := httptest.NewRecorder()
		r := withVars(requestAs("PUT", "/api/notes.Note/42", "admin",
			strings.NewReader(`{"title": "renamed"}`)),
			map[string]string{"model": "notes.Note", "pk": "42"})
		handler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid field value is 400", func(t *testing.T) {
		instances := newFakeInstances()
		desc, _ := reg.Get("notes.Note")
		instances.seed(desc, map[string]interface{}{"title": "first", "pinned": false})

		handler := APIUpdate(reg, adminPerms("change"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("PUT", "/api/notes.Note/1", "admin",
			strings.NewReader(`{"pinned": "maybe"}`)),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		row, _ := instances.Get(desc, 1)
		assert.Equal(t, false, row["pinned"])
	})

	t.Run("without permission is 403", func(t *testing.T) {
		instances := newFakeInstances()
		desc, _ := reg.Get("notes.Note")
		instances.seed(desc, map[string]interface{}{"title": "first"})

		handler := APIUpdate(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("PUT", "/api/notes.Note/1", "admin",
			strings.NewReader(`{"title": "renamed"}`)),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAPIDelete(t *testing.T) {
	reg := testRegistry(t)

	t.Run("deletes with no body", func(t *testing.T) {
		instances := newFakeInstances()
		desc, _ := reg.Get("notes.Note")
		instances.seed(desc, map[string]interface{}{"title": "doomed"})

		handler := APIDelete(reg, adminPerms("delete"), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("DELETE", "/api/notes.Note/1", "admin", nil),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		count, _ := instances.Count(desc)
		assert.Zero(t, count)
	})

	t.Run("missing record is 404", func(t *testing.T) {
		handler := APIDelete(reg, adminPerms("delete"), newFakeInstances())
		w := httptest.NewRecorder()
		r := withVars(requestAs("DELETE", "/api/notes.Note/42", "admin", nil),
			map[string]string{"model": "notes.Note", "pk": "42"})
		handler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("without permission is 403", func(t *testing.T) {
		instances := newFakeInstances()
		desc, _ := reg.Get("notes.Note")
		instances.seed(desc, map[string]interface{}{"title": "safe"})

		handler := APIDelete(reg, adminPerms(), instances)
		w := httptest.NewRecorder()
		r := withVars(requestAs("DELETE", "/api/notes.Note/1", "admin", nil),
			map[string]string{"model": "notes.Note", "pk": "1"})
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		count, _ := instances.Count(desc)
		assert.Equal(t, 1, count)
	})
}
