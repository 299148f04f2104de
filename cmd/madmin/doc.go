// Package main provides the madmin CLI, the entry point of the
// metadata-driven admin panel server.
//
// The panel serves a dashboard of selected models, generic CRUD pages
// derived from each model's registered field metadata, and a matching
// REST API. Access is gated per principal by permission strings of the
// form "<namespace>.<action>_<model>".
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: dashboard, CRUD and REST handlers
//   - pkg/server/store: storage interfaces and their GORM implementation
//   - pkg/registry: model descriptors and identifier resolution
//   - pkg/schema: form derivation and validation
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	madmin db migrate
//
//	# Create a principal and grant it panel access
//	madmin principal create admin
//	madmin principal grant admin panel.access_panel
//
//	# Issue an access token
//	export MADMIN_TOKEN_KEY=some-long-random-secret
//	madmin token admin
//
//	# Start the server
//	madmin server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - MADMIN_TOKEN_KEY: shared secret used to sign access tokens
//   - MADMIN_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port (default: 8080)
package main
