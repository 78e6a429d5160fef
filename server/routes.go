package server

import "net/http"

func (s *Server) initRoutes() {
	// OIDC RP-Initiated Logout accepts GET query or POST body parameters
	s.RegisterRouteHandler("GET "+RouteEndSession, ChainMiddleware(s.EndSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteEndSession, ChainMiddleware(s.EndSessionHandler(), s.APIMiddleware()...))

	// M2M API-key verification, callable cross-origin by backend services
	s.RegisterRouteHandler("POST "+RouteAPIKeyVerify, ChainMiddleware(s.APIKeyVerifyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPIKeyVerify, ChainMiddleware(s.APIKeyPreflightHandler(), s.APIMiddleware()...))

	// Discovery & health
	s.RegisterRouteHandler("GET "+RouteWellKnownOpenIDConfig, ChainMiddleware(s.WellKnownOpenIDConfig(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}

// HealthzHandler reports process liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
