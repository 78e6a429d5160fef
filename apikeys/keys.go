// Package apikeys gateways machine-to-machine API-key verification. The
// gateway consumes the Repo interface only; hashing and lookup belong to the
// credential store behind it.
package apikeys

import (
	"errors"
	"time"
)

// Verification failure modes, mapped 1:1 onto the wire error codes.
var (
	ErrKeyInvalid  = errors.New("api key is invalid")
	ErrKeyExpired  = errors.New("api key has expired")
	ErrKeyDisabled = errors.New("api key is disabled")
)

// Key is the projection of a stored API key returned to callers on a
// successful verification. It never carries the raw or hashed secret.
type Key struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	UserID    string         `json:"userId"`
	Enabled   bool           `json:"enabled"`
	ExpiresAt *time.Time     `json:"expiresAt"`
	Metadata  map[string]any `json:"metadata"`
}
