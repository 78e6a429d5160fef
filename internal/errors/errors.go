package errors

import (
	"errors"
	"fmt"
)

// Common error types for the SSO gateway
var (
	// Registry errors
	ErrClientMissingID      = errors.New("trusted client is missing a clientId")
	ErrClientDuplicateID    = errors.New("duplicate clientId in trusted clients")
	ErrClientNoRedirectURLs = errors.New("trusted client has no redirect URLs")
	ErrClientNotFound       = errors.New("client not found")

	// Trust errors
	ErrUntrustedRedirect = errors.New("redirect URI is not on the origin allowlist")

	// Session errors
	ErrSessionTerminate = errors.New("failed to terminate session")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
