// Package identity is the boundary to the external identity provider.
// Account storage, password hashing and tokens live on the other side of
// Provider; this package only sends credentials and reports outcomes.
package identity

import "context"

// MinPasswordLength is the shortest password, in characters, the provider
// accepts for a new account.
const MinPasswordLength = 6

// Provider performs the two delegated operations of the auth screen.
// Both complete exactly once with nil or an error; Describe extracts the
// message to show.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) error
	Authenticate(ctx context.Context, email, password string) error
}

// Pinger is implemented by providers that can be probed for reachability
// before the screen is shown.
type Pinger interface {
	Ping(ctx context.Context) error
}
