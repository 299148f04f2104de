package model

// PanelSelection is the single persisted row holding the ordered set of
// model identifiers pinned to the admin dashboard, serialized as a JSON
// array in models_text. At most one row exists.
type PanelSelection struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	ModelsText string `gorm:"column:models_text;not null"`
}

func (PanelSelection) TableName() string {
	return "panel_selections"
}
