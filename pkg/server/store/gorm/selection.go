package gorm

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/modeladmin/madmin/pkg/model"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// Ensure SelectionStore implements store.SelectionStore
var _ store.SelectionStore = (*SelectionStore)(nil)

// SelectionStore implements store.SelectionStore using GORM. The
// selection lives in the single panel_selections row as a JSON array
// of model identifiers.
type SelectionStore struct {
	db *gorm.DB
}

// NewSelectionStore creates a new SelectionStore
func NewSelectionStore(db *gorm.DB) *SelectionStore {
	return &SelectionStore{db: db}
}

func decodeSelection(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, fmt.Errorf("corrupt panel selection blob: %w", err)
	}
	return ids, nil
}

func encodeSelection(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load returns the current selection. A missing row or blank blob
// yields an empty list.
func (s *SelectionStore) Load() ([]string, error) {
	var row model.PanelSelection
	res := s.db.Raw(`SELECT id, models_text FROM panel_selections ORDER BY id LIMIT 1`).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return []string{}, nil
	}
	return decodeSelection(row.ModelsText)
}

// Save replaces the stored selection.
func (s *SelectionStore) Save(identifiers []string) error {
	return s.Update(func([]string) ([]string, error) {
		return identifiers, nil
	})
}

// Update applies fn to the current selection inside one transaction
// with the selection row locked, so two admins editing concurrently
// cannot lose each other's writes.
func (s *SelectionStore) Update(fn func(current []string) ([]string, error)) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var row model.PanelSelection
		res := tx.Raw(`SELECT id, models_text FROM panel_selections ORDER BY id LIMIT 1 FOR UPDATE`).Scan(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Created implicitly on first use.
			if err := tx.Exec(`INSERT INTO panel_selections (models_text) VALUES ('')`).Error; err != nil {
				return err
			}
			res = tx.Raw(`SELECT id, models_text FROM panel_selections ORDER BY id LIMIT 1 FOR UPDATE`).Scan(&row)
			if res.Error != nil {
				return res.Error
			}
		}

		current, err := decodeSelection(row.ModelsText)
		if err != nil {
			return err
		}

		updated, err := fn(current)
		if err != nil {
			return err
		}

		text, err := encodeSelection(updated)
		if err != nil {
			return err
		}

		return tx.Exec(`UPDATE panel_selections SET models_text = ? WHERE id = ?`, text, row.ID).Error
	})
}
