package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeladmin/madmin/pkg/config"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/server/store"
)

func testConfig() *config.Config {
	return &config.Config{
		PanelPageSize:      6,
		PanelPlainPageSize: 8,
		ObjectListPageSize: 15,
	}
}

func seedNotes(t *testing.T, reg *registry.Registry, instances *fakeInstances, n int) *registry.Descriptor {
	t.Helper()
	desc, err := reg.Get("notes.Note")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		instances.seed(desc, map[string]interface{}{"title": "note", "body": "", "pinned": false})
	}
	return desc
}

func TestSelectablePartitionsRegistry(t *testing.T) {
	reg := testRegistry(t)

	t.Run("empty selection offers everything", func(t *testing.T) {
		assert.Equal(t, []string{"notes.Note", "notes.Tag"}, selectable(reg, nil))
	})

	t.Run("selected models are excluded", func(t *testing.T) {
		assert.Equal(t, []string{"notes.Tag"}, selectable(reg, []string{"notes.Note"}))
	})

	t.Run("full selection offers nothing", func(t *testing.T) {
		assert.Empty(t, selectable(reg, []string{"notes.Note", "notes.Tag"}))
	})

	t.Run("stale identifiers do not shadow registered models", func(t *testing.T) {
		assert.Equal(t, []string{"notes.Note", "notes.Tag"}, selectable(reg, []string{"gone.Model"}))
	})
}

func TestSelectedDescriptorsSkipsStale(t *testing.T) {
	reg := testRegistry(t)

	descs := selectedDescriptors(reg, []string{"gone.Model", "notes.Tag", "notes.Note"})
	require.Len(t, descs, 2)
	assert.Equal(t, "notes.Tag", descs[0].ID())
	assert.Equal(t, "notes.Note", descs[1].ID())
}

func TestBuildModelViewPaginates(t *testing.T) {
	reg := testRegistry(t)
	instances := newFakeInstances()
	desc := seedNotes(t, reg, instances, 8)

	t.Run("first page", func(t *testing.T) {
		view, err := buildModelView(instances, desc, 6, "")
		require.NoError(t, err)
		assert.Len(t, view.Rows, 6)
		assert.Equal(t, 1, view.Page.Number)
		assert.Equal(t, 2, view.Page.NumPages)
		assert.True(t, view.Page.HasNext)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		view, err := buildModelView(instances, desc, 6, "2")
		require.NoError(t, err)
		assert.Len(t, view.Rows, 2)
		assert.True(t, view.Page.HasPrev)
		assert.False(t, view.Page.HasNext)
	})

	t.Run("out of range clamps to last page", func(t *testing.T) {
		view, err := buildModelView(instances, desc, 6, "99")
		require.NoError(t, err)
		assert.Equal(t, 2, view.Page.Number)
		assert.Len(t, view.Rows, 2)
	})

	t.Run("junk falls back to first page", func(t *testing.T) {
		view, err := buildModelView(instances, desc, 6, "abc")
		require.NoError(t, err)
		assert.Equal(t, 1, view.Page.Number)
	})
}

func TestPanelPageRequiresAccess(t *testing.T) {
	reg := testRegistry(t)
	handler := PanelPage(reg, testConfig(), &fakeSelection{}, newFakePermissions(), newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("GET", "/", "nobody", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPanelPageRenders(t *testing.T) {
	reg := testRegistry(t)
	instances := newFakeInstances()
	seedNotes(t, reg, instances, 2)
	sel := &fakeSelection{current: []string{"notes.Note"}}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, instances)

	w := httptest.NewRecorder()
	handler(w, requestAs("GET", "/", "admin", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "notes.Note")
	assert.Contains(t, body, "notes.Tag")
	assert.Contains(t, body, "/objects/notes.Note")
}

func TestPanelPageAddsModels(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"add": {"1"}, "select_models": {"0"}})))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"notes.Note"}, sel.current)
}

func TestPanelPageRejectsOutOfRangeIndex(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"add": {"1"}, "select_models": {"5"}})))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sel.current)
}

func TestPanelPageRemovesModels(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{current: []string{"notes.Note", "notes.Tag"}}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"remove": {"1"}, "remove_models": {"0"}})))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"notes.Tag"}, sel.current)
}

func TestPanelPageRemoveNothingIsNoop(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{current: []string{"notes.Note"}}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"remove": {"1"}})))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"notes.Note"}, sel.current)
}

func TestPanelPageAddThenRemoveRoundTrips(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"add": {"1"}, "select_models": {"0", "1"}})))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"notes.Note", "notes.Tag"}, sel.current)

	w = httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"remove": {"1"}, "remove_models": {"0", "1"}})))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sel.current)
}

func TestPanelPagePreservesStaleIdentifiers(t *testing.T) {
	reg := testRegistry(t)
	sel := &fakeSelection{current: []string{"gone.Model", "notes.Note", "notes.Tag"}}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPage(reg, testConfig(), sel, perms, newFakeInstances())

	// Index 0 of the rendered list is notes.Note, the stale entry is
	// invisible to the form.
	w := httptest.NewRecorder()
	handler(w, requestAs("POST", "/", "admin",
		formBody(url.Values{"remove": {"1"}, "remove_models": {"0"}})))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"gone.Model", "notes.Tag"}, sel.current)
}

func TestPanelPlain(t *testing.T) {
	reg := testRegistry(t)
	instances := newFakeInstances()
	seedNotes(t, reg, instances, 10)
	sel := &fakeSelection{current: []string{"notes.Note"}}
	perms := newFakePermissions(grantKey("admin", store.AccessPanelPermission))
	handler := PanelPlain(reg, testConfig(), sel, perms, instances)

	w := httptest.NewRecorder()
	handler(w, requestAs("GET", "/panel.json", "admin", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var out plainPanel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, []string{"notes.Note"}, out.Selected)
	assert.Equal(t, []string{"notes.Tag"}, out.Selectable)
	require.Len(t, out.Models, 1)
	assert.Len(t, out.Models[0].Rows, 8)
	assert.Equal(t, 2, out.Models[0].NumPages)
}

func TestPanelPlainRequiresAccess(t *testing.T) {
	reg := testRegistry(t)
	handler := PanelPlain(reg, testConfig(), &fakeSelection{}, newFakePermissions(), newFakeInstances())

	w := httptest.NewRecorder()
	handler(w, requestAs("GET", "/panel.json", "nobody", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "you don't have access to the admin panel"}`, w.Body.String())
}
