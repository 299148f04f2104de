package endpoints

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/modeladmin/madmin/pkg/config"
	"github.com/modeladmin/madmin/pkg/paginate"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/server"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// errBadIndex marks a selection submission whose positional indexes do
// not fit the list the form was rendered from.
var errBadIndex = errors.New("selection index out of range")

type recordRow struct {
	PK    int64
	Cells []string
}

type modelView struct {
	Identifier string
	Title      string
	Columns    []string
	Rows       []recordRow
	Page       paginate.Window
	PrevPage   int
	NextPage   int
}

type panelView struct {
	Selectable []string
	Selected   []string
	Models     []modelView
}

// selectable returns the identifiers of registered models not in the
// current selection, in registration order. Positional indexes in the
// add form refer to this list.
func selectable(reg *registry.Registry, selected []string) []string {
	in := make(map[string]bool, len(selected))
	for _, id := range selected {
		in[id] = true
	}
	var out []string
	for _, d := range reg.All() {
		if !in[d.ID()] {
			out = append(out, d.ID())
		}
	}
	return out
}

// selectedDescriptors resolves the stored selection against the
// registry. Identifiers that no longer resolve are skipped with a log
// line; they stay in the stored list until removed. Positional indexes
// in the remove form refer to the resolved list.
func selectedDescriptors(reg *registry.Registry, selected []string) []*registry.Descriptor {
	var out []*registry.Descriptor
	for _, id := range selected {
		d, err := reg.Get(id)
		if err != nil {
			log.Printf("panel selection refers to unknown model %q, skipping", id)
			continue
		}
		out = append(out, d)
	}
	return out
}

func parseIndexes(raw []string, limit int) ([]int, error) {
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n >= limit {
			return nil, fmt.Errorf("%w: %q", errBadIndex, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// addToSelection appends the models at the submitted indexes of the
// selectable list. The indexes are resolved against the selection as it
// is inside the transaction, not as it was when the form rendered.
func addToSelection(reg *registry.Registry, sel store.SelectionStore, indexes []string) error {
	return sel.Update(func(current []string) ([]string, error) {
		available := selectable(reg, current)
		idxs, err := parseIndexes(indexes, len(available))
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(idxs))
		for _, i := range idxs {
			id := available[i]
			if seen[id] {
				continue
			}
			seen[id] = true
			current = append(current, id)
		}
		return current, nil
	})
}

// removeFromSelection drops the models at the submitted indexes of the
// resolved selected list. Stale identifiers keep their place in the
// stored list; an empty index list is a no-op.
func removeFromSelection(reg *registry.Registry, sel store.SelectionStore, indexes []string) error {
	return sel.Update(func(current []string) ([]string, error) {
		resolved := selectedDescriptors(reg, current)
		idxs, err := parseIndexes(indexes, len(resolved))
		if err != nil {
			return nil, err
		}
		remove := make(map[string]bool, len(idxs))
		for _, i := range idxs {
			remove[resolved[i].ID()] = true
		}
		out := make([]string, 0, len(current))
		for _, id := range current {
			if remove[id] {
				continue
			}
			out = append(out, id)
		}
		return out, nil
	})
}

func buildModelView(instances store.InstanceStore, desc *registry.Descriptor, pageSize int, rawPage string) (modelView, error) {
	rows, err := instances.List(desc)
	if err != nil {
		return modelView{}, err
	}
	window := paginate.Page(len(rows), pageSize, rawPage)
	view := modelView{
		Identifier: desc.ID(),
		Title:      desc.Name,
		Columns:    columnNames(desc),
		Page:       window,
		PrevPage:   window.Number - 1,
		NextPage:   window.Number + 1,
	}
	for _, row := range rows[window.Offset:window.End] {
		view.Rows = append(view.Rows, recordRow{PK: pkValue(desc, row), Cells: cellValues(desc, row)})
	}
	return view, nil
}

func buildPanelView(reg *registry.Registry, instances store.InstanceStore, sel store.SelectionStore, pageSize int, pageFor func(identifier string) string) (*panelView, error) {
	current, err := sel.Load()
	if err != nil {
		return nil, err
	}
	view := &panelView{Selectable: selectable(reg, current)}
	for _, desc := range selectedDescriptors(reg, current) {
		view.Selected = append(view.Selected, desc.ID())
		mv, err := buildModelView(instances, desc, pageSize, pageFor(desc.ID()))
		if err != nil {
			return nil, err
		}
		view.Models = append(view.Models, mv)
	}
	return view, nil
}

// PanelPage serves the dashboard. GET renders the selection forms and a
// paginated table per selected model; POST mutates the selection and
// re-renders.
func PanelPage(reg *registry.Registry, cfg *config.Config, sel store.SelectionStore, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkPanelAccess(perms, w, r); !ok {
			return
		}

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "malformed form body", http.StatusBadRequest)
				return
			}
			var err error
			switch {
			case r.PostForm.Get("add") != "":
				err = addToSelection(reg, sel, r.PostForm["select_models"])
			case r.PostForm.Get("remove") != "":
				err = removeFromSelection(reg, sel, r.PostForm["remove_models"])
			}
			if err != nil {
				if errors.Is(err, errBadIndex) {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				log.Printf("panel selection update: %v", err)
				http.Error(w, "could not update selection", http.StatusInternalServerError)
				return
			}
		}

		query := r.URL.Query()
		view, err := buildPanelView(reg, instances, sel, cfg.PanelPageSize, query.Get)
		if err != nil {
			log.Printf("panel view: %v", err)
			http.Error(w, "could not load panel", http.StatusInternalServerError)
			return
		}
		renderPage(w, http.StatusOK, "panel.html", view)
	}
}

type plainModel struct {
	Identifier string     `json:"identifier"`
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	Page       int        `json:"page"`
	NumPages   int        `json:"num_pages"`
}

type plainPanel struct {
	Selected   []string     `json:"selected"`
	Selectable []string     `json:"selectable"`
	Models     []plainModel `json:"models"`
}

// PanelPlain serves the machine-readable dashboard variant. It mirrors
// the GET dashboard with its own page size and no mutation support.
func PanelPlain(reg *registry.Registry, cfg *config.Config, sel store.SelectionStore, perms store.PermissionStore, instances store.InstanceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkPanelAccessJSON(perms, w, r); !ok {
			return
		}

		query := r.URL.Query()
		view, err := buildPanelView(reg, instances, sel, cfg.PanelPlainPageSize, query.Get)
		if err != nil {
			log.Printf("panel view: %v", err)
			respondWithError(w, http.StatusInternalServerError, "could not load panel")
			return
		}

		out := plainPanel{
			Selected:   view.Selected,
			Selectable: view.Selectable,
			Models:     make([]plainModel, 0, len(view.Models)),
		}
		for _, mv := range view.Models {
			pm := plainModel{
				Identifier: mv.Identifier,
				Columns:    mv.Columns,
				Rows:       make([][]string, 0, len(mv.Rows)),
				Page:       mv.Page.Number,
				NumPages:   mv.Page.NumPages,
			}
			for _, row := range mv.Rows {
				pm.Rows = append(pm.Rows, row.Cells)
			}
			out.Models = append(out.Models, pm)
		}
		respondWithJSON(w, http.StatusOK, out)
	}
}

// RegisterPanel wires the dashboard routes.
func RegisterPanel(s *server.Server) {
	s.Router.HandleFunc("/",
		PanelPage(s.Registry, s.Config, s.Selection, s.Permissions, s.Instances)).Methods("GET", "POST")
	s.Router.HandleFunc("/panel.json",
		PanelPlain(s.Registry, s.Config, s.Selection, s.Permissions, s.Instances)).Methods("GET")
}
