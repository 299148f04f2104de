// Package server provides the HTTP server for the madmin panel.
//
// This package implements the core HTTP server that handles the
// server-rendered admin UI and the generic REST API. It uses
// gorilla/mux for routing and provides middleware for authentication.
//
// # Server Setup
//
//	srv := server.NewServer(reg, db, cfg, host, port)
//	endpoints.RegisterAll(srv, authMiddleware)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Registry: the process-wide model registry
//   - Router: HTTP request router
//   - DB: database connection
//   - Selection/Permissions/Instances: the storage layer
//
// # Endpoints
//
// Endpoints are registered via the endpoints subpackage:
//
//   - / - dashboard with model selection (GET/POST)
//   - /panel.json - JSON dashboard variant
//   - /objects/{model} - object listing
//   - /create/{model} - create form
//   - /objects/{model}/{pk}/edit - edit form
//   - /objects/{model}/{pk}delete - delete
//   - /api/{model}[/{pk}] - generic REST surface
//   - /help - rendered help page
package server
