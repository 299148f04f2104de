package gorm

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// Ensure InstanceStore implements store.InstanceStore
var _ store.InstanceStore = (*InstanceStore)(nil)

// InstanceStore implements store.InstanceStore using GORM. Table and
// column names come from registered descriptors, built at process
// start; they are still quoted defensively.
type InstanceStore struct {
	db *gorm.DB
}

// NewInstanceStore creates a new InstanceStore
func NewInstanceStore(db *gorm.DB) *InstanceStore {
	return &InstanceStore{db: db}
}

func columnList(desc *registry.Descriptor) string {
	cols := make([]string, 0, len(desc.Fields)+1)
	cols = append(cols, pq.QuoteIdentifier(desc.PK))
	for _, f := range desc.Fields {
		cols = append(cols, pq.QuoteIdentifier(f.Name))
	}
	return strings.Join(cols, ", ")
}

// List returns all records of the model in primary-key order
func (s *InstanceStore) List(desc *registry.Descriptor) ([]map[string]interface{}, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		columnList(desc), pq.QuoteIdentifier(desc.Table), pq.QuoteIdentifier(desc.PK))
	return s.queryRows(query)
}

// Get fetches one record by primary key
func (s *InstanceStore) Get(desc *registry.Descriptor, pk int64) (map[string]interface{}, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		columnList(desc), pq.QuoteIdentifier(desc.Table), pq.QuoteIdentifier(desc.PK))
	rows, err := s.queryRows(query, pk)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s pk=%d", store.ErrNoRow, desc.ID(), pk)
	}
	return rows[0], nil
}

// Create inserts a record and returns it as stored
func (s *InstanceStore) Create(desc *registry.Descriptor, values map[string]interface{}) (map[string]interface{}, error) {
	cols := make([]string, 0, len(desc.Fields))
	placeholders := make([]string, 0, len(desc.Fields))
	args := make([]interface{}, 0, len(desc.Fields))
	for _, f := range desc.Fields {
		cols = append(cols, pq.QuoteIdentifier(f.Name))
		placeholders = append(placeholders, "?")
		args = append(args, values[f.Name])
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		pq.QuoteIdentifier(desc.Table),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		pq.QuoteIdentifier(desc.PK))

	var pk int64
	if err := s.db.Raw(query, args...).Scan(&pk).Error; err != nil {
		return nil, err
	}

	return s.Get(desc, pk)
}

// Update overwrites the record's fields and returns it as stored
func (s *InstanceStore) Update(desc *registry.Descriptor, pk int64, values map[string]interface{}) (map[string]interface{}, error) {
	assignments := make([]string, 0, len(desc.Fields))
	args := make([]interface{}, 0, len(desc.Fields)+1)
	for _, f := range desc.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		assignments = append(assignments, pq.QuoteIdentifier(f.Name)+" = ?")
		args = append(args, v)
	}
	if len(assignments) == 0 {
		return s.Get(desc, pk)
	}
	args = append(args, pk)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`,
		pq.QuoteIdentifier(desc.Table),
		strings.Join(assignments, ", "),
		pq.QuoteIdentifier(desc.PK))

	res := s.db.Exec(query, args...)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s pk=%d", store.ErrNoRow, desc.ID(), pk)
	}

	return s.Get(desc, pk)
}

// Delete removes the record
func (s *InstanceStore) Delete(desc *registry.Descriptor, pk int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		pq.QuoteIdentifier(desc.Table), pq.QuoteIdentifier(desc.PK))

	res := s.db.Exec(query, pk)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s pk=%d", store.ErrNoRow, desc.ID(), pk)
	}
	return nil
}

// Count returns the number of records of the model
func (s *InstanceStore) Count(desc *registry.Descriptor) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pq.QuoteIdentifier(desc.Table))
	if err := s.db.Raw(query).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *InstanceStore) queryRows(query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := s.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0)
	for rows.Next() {
		vals := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(names))
		for i, name := range names {
			row[name] = normalize(vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalize flattens driver-specific scan types into plain values.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
