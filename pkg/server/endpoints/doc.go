// Package endpoints implements the admin panel's HTTP handlers: the
// server-rendered dashboard and CRUD pages, and the generic REST
// surface under /api.
//
// Handlers are plain closures over the store interfaces so tests can
// exercise them with mocks; Register* functions wire them onto the
// server's router.
//
// Every model-addressed handler performs the same two independent
// checks before touching data: the identifier must resolve against the
// registry (a stale identifier fails closed with a redirect or 404,
// never a crash) and the principal must hold the permission string for
// the action (failing closed with 403, never a partial effect).
package endpoints
