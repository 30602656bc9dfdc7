// Package shelfauth defines the Credentials contract clients use to
// authenticate against a cluster, plus a bearer-JWT implementation.
//
// Unlike a server, a client never has to dispatch among mechanisms by
// sniffing token bytes off the wire — it picks exactly one authentication
// mechanism at construction time and sticks with it for the life of the
// session, so Credentials is a single-method contract rather than a
// chain of providers.
package shelfauth

import (
	"context"
	"errors"
)

// ErrCredentialsExpired is returned by Token when the held credential has
// expired and could not be refreshed.
var ErrCredentialsExpired = errors.New("shelfauth: credentials expired")

// Credentials produces the value attached to outgoing requests to
// authenticate a session against the cluster.
type Credentials interface {
	// Token returns the current authentication token, refreshing it first
	// if it is at or past its expiry.
	Token(ctx context.Context) (string, error)

	// Scheme names the authentication mechanism, e.g. "Bearer" or
	// "Negotiate", for transports that need to set a scheme prefix.
	Scheme() string
}
