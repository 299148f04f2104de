package identity

import (
	"context"
	"net"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated principal for a request. It is
// attached to the request context by the auth middleware and consumed
// by permission checks; the core never issues identities itself.
type Identity struct {
	// Token claims
	PrincipalID string
	IssuedAt    time.Time
	ExpiresAt   time.Time

	// Request context
	RemoteIP net.IP
}

// New creates an Identity for a principal.
func New(principalID string) *Identity {
	return &Identity{PrincipalID: principalID}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Set stores an Identity in the context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}

// Get retrieves the Identity from the context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}
