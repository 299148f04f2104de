// Package model defines the database models owned by the admin panel.
//
// This package contains GORM models for the panel's own state. The
// content models the panel administers are NOT defined here: they are
// addressed generically through pkg/registry descriptors and their rows
// never leave the persistence layer as typed structs.
//
// # Models
//
//   - PanelSelection: the single row holding the pinned-model list
//   - Principal: an authenticated panel user
//   - PrincipalPermission: one permission grant for one principal
//
// # Database Schema
//
//   - panel_selections: one row, models_text JSON array of identifiers
//   - principals: panel users
//   - principal_permissions: permission strings per principal
package model
