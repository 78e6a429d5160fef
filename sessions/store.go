// Package sessions wraps the hosted auth framework's session teardown as a
// collaborator interface. The gateway never touches session persistence
// itself; it forwards the browser's cookies and asks the framework to
// invalidate whatever session they identify.
package sessions

import "context"

// Store terminates sessions at the auth framework.
type Store interface {
	// Terminate invalidates the session identified by the forwarded Cookie
	// header. Callers treat failure as best-effort: it is logged, never
	// retried, and never blocks the logout response.
	Terminate(ctx context.Context, cookieHeader string) error
}
