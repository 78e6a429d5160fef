package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// OIDC RP-Initiated Logout
	RouteEndSession = "/endsession"

	// M2M API-key verification
	RouteAPIKeyVerify = "/api-key/verify"

	// Discovery & health
	RouteWellKnownOpenIDConfig = "/.well-known/openid-configuration"
	RouteHealthz               = "/healthz"
)
