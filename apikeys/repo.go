package apikeys

import "context"

// Repo verifies raw API keys against the credential store.
type Repo interface {
	// Verify returns the key's projection when the raw key matches a stored,
	// enabled, unexpired credential. Failures are reported through the
	// sentinel errors ErrKeyInvalid, ErrKeyExpired and ErrKeyDisabled; any
	// other error is an internal store failure.
	Verify(ctx context.Context, rawKey string) (*Key, error)
}
