package model

// PrincipalPermission grants one permission string to one principal.
// Permission strings take the form "<namespace>.<action>_<modelname>",
// plus the panel-wide "panel.access_panel".
type PrincipalPermission struct {
	PrincipalID string `gorm:"column:principal_id;primaryKey"`
	Permission  string `gorm:"column:permission;primaryKey"`
}

func (PrincipalPermission) TableName() string {
	return "principal_permissions"
}
