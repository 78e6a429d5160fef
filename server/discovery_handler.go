package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// WellKnownOpenIDConfig serves the slice of the OIDC discovery document this
// surface owns. Token, authorization and JWKS endpoints belong to the hosted
// auth framework and are not advertised here.
func (s *Server) WellKnownOpenIDConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseURL := strings.TrimRight(s.config.GetBaseURL(), "/")

		resp := map[string]any{
			"issuer":               baseURL,
			"end_session_endpoint": baseURL + RouteEndSession,
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
		_ = json.NewEncoder(w).Encode(resp)
	}
}
