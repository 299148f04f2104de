package store

// AccessPanelPermission gates every surface of the admin panel.
const AccessPanelPermission = "panel.access_panel"

// PermissionStore answers per-principal permission checks. Permission
// strings take the form "<namespace>.<action>_<modelname>" with action
// one of add, change, delete, plus AccessPanelPermission.
type PermissionStore interface {
	// HasPermission reports whether the principal holds the permission.
	// Unknown principals simply hold nothing.
	HasPermission(principalID, permission string) bool

	// Grant gives the principal a permission. Granting twice is a no-op.
	Grant(principalID, permission string) error

	// Revoke removes a permission from the principal.
	Revoke(principalID, permission string) error
}
