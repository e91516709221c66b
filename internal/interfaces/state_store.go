package interfaces

// StateTokenStore manages one-time CSRF state tokens for the OAuth
// handshake. Tokens expire after a fixed TTL and are removed by a
// background sweep.
type StateTokenStore interface {
	// Issue generates a random token bound to an integration type.
	Issue(integrationType string) (string, error)

	// Consume validates and deletes a token. The delete happens on any
	// lookup hit, including type mismatches, so a token never validates
	// twice. Returns state.ErrInvalidState or state.ErrStateTypeMismatch.
	Consume(token, integrationType string) error

	// Start launches the background expiry sweep.
	Start() error

	// Shutdown stops the sweep and clears all entries.
	Shutdown()
}
