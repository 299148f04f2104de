package gorm

import (
	"gorm.io/gorm"

	"github.com/modeladmin/madmin/pkg/model"
	"github.com/modeladmin/madmin/pkg/server/store"
)

// Ensure PermissionStore implements store.PermissionStore
var _ store.PermissionStore = (*PermissionStore)(nil)

// PermissionStore implements store.PermissionStore using GORM
type PermissionStore struct {
	db *gorm.DB
}

// NewPermissionStore creates a new PermissionStore
func NewPermissionStore(db *gorm.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// HasPermission reports whether the principal holds the permission
func (s *PermissionStore) HasPermission(principalID, permission string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM principal_permissions WHERE principal_id = ? AND permission = ?)`,
		principalID, permission).Scan(&exists)
	return exists
}

// Grant gives the principal a permission
func (s *PermissionStore) Grant(principalID, permission string) error {
	return s.db.Exec(`
		INSERT INTO principal_permissions (principal_id, permission)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, principalID, permission).Error
}

// Revoke removes a permission from the principal
func (s *PermissionStore) Revoke(principalID, permission string) error {
	return s.db.Delete(&model.PrincipalPermission{
		PrincipalID: principalID,
		Permission:  permission,
	}).Error
}
