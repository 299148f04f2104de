package store

// SelectionStore persists the ordered list of model identifiers pinned
// to the admin dashboard. The list lives in a single row; an absent row
// reads as an empty selection.
type SelectionStore interface {
	// Load returns the current selection. A missing or blank record
	// yields an empty list, not an error.
	Load() ([]string, error)

	// Save replaces the stored selection.
	Save(identifiers []string) error

	// Update applies fn to the current selection and stores the result,
	// all inside one transaction with the selection row locked. fn
	// returning an error aborts without writing.
	Update(fn func(current []string) ([]string, error)) error
}
