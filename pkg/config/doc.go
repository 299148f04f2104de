// Package config provides configuration management for madmin.
//
// Configuration is loaded from a YAML file (madmin.yml under
// MADMIN_CONFIG_PATH, default /etc/madmin/config) with environment
// variable overrides, and each attribute remembers where its value came
// from for "madmin configuration show".
//
// # Key Configuration Options
//
//   - MADMIN_PANEL_PAGE_SIZE: dashboard page size per model
//   - MADMIN_PANEL_PLAIN_PAGE_SIZE: JSON dashboard page size per model
//   - MADMIN_OBJECT_LIST_PAGE_SIZE: object listing page size
//   - MADMIN_TOKEN_TTL: access token lifetime in seconds
//   - MADMIN_TRUSTED_PROXIES: CIDR list for X-Forwarded-For trust
//   - DATABASE_URL: database connection
//   - PORT: server listen port
package config
