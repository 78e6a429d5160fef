package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/robolearn/sso-gateway/trust"
	"github.com/rs/zerolog/log"
)

// logoutRequest carries the OIDC RP-Initiated Logout parameters for a single
// request. It is built from the query string or POST body and discarded once
// the response is written.
type logoutRequest struct {
	IDTokenHint           string
	PostLogoutRedirectURI string
	State                 string
	ClientID              string
}

func parseLogoutRequest(r *http.Request) logoutRequest {
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
	}
	return logoutRequest{
		IDTokenHint:           r.FormValue("id_token_hint"),
		PostLogoutRedirectURI: r.FormValue("post_logout_redirect_uri"),
		State:                 r.FormValue("state"),
		ClientID:              r.FormValue("client_id"),
	}
}

// EndSessionHandler implements OIDC RP-Initiated Logout.
//
// The flow is a single pass: validate the post-logout URI (pure, can
// short-circuit with a 400), then attempt session teardown (best-effort,
// errors logged not propagated), then respond. Teardown failure never
// suppresses a redirect that was already validated.
//
// Spec: https://openid.net/specs/openid-connect-rpinitiated-1_0.html
func (s *Server) EndSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseLogoutRequest(r)

		if req.PostLogoutRedirectURI != "" && !s.trust.IsValidRedirect(req.PostLogoutRedirectURI) {
			log.Warn().Str("post_logout_redirect_uri", req.PostLogoutRedirectURI).
				Str("client_id", req.ClientID).
				Msg("[EndSession] rejected invalid post_logout_redirect_uri")
			writeJSONError(w, "invalid_request", "Invalid post_logout_redirect_uri", http.StatusBadRequest)
			return
		}

		s.auditTokenHint(req)

		// Best-effort teardown: the session store may be unreachable or the
		// session already gone; neither changes the redirect decision.
		terminateErr := s.sessions.Terminate(r.Context(), r.Header.Get("Cookie"))
		if terminateErr != nil {
			log.Err(terminateErr).Msg("[EndSession] session termination failed")
		}

		if req.PostLogoutRedirectURI != "" {
			target := trust.AppendState(req.PostLogoutRedirectURI, req.State)
			s.clearSessionCookies(w, r)
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		if terminateErr != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "Failed to end session",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Session terminated",
		})
	}
}

// auditTokenHint logs inconsistencies between id_token_hint, client_id and
// the registered redirect list. Validation stays against the global
// allowlist: the hint is parsed without signature verification and is an
// audit signal only, never a trust decision.
func (s *Server) auditTokenHint(req logoutRequest) {
	if req.ClientID != "" && req.PostLogoutRedirectURI != "" {
		if client, err := s.registry.Get(req.ClientID); err != nil {
			log.Warn().Str("client_id", req.ClientID).Msg("[EndSession] unknown client_id on logout")
		} else if !client.HasRedirectURL(req.PostLogoutRedirectURI) {
			log.Warn().Str("client_id", req.ClientID).
				Str("post_logout_redirect_uri", req.PostLogoutRedirectURI).
				Msg("[EndSession] post_logout_redirect_uri not registered for named client")
		}
	}

	if req.IDTokenHint == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(req.IDTokenHint, claims); err != nil {
		log.Warn().Err(err).Msg("[EndSession] unparseable id_token_hint")
		return
	}
	if req.ClientID == "" {
		return
	}
	audience, err := claims.GetAudience()
	if err != nil {
		return
	}
	for _, aud := range audience {
		if aud == req.ClientID {
			return
		}
	}
	log.Warn().Str("client_id", req.ClientID).Strs("aud", audience).
		Msg("[EndSession] id_token_hint audience does not match client_id")
}

// clearSessionCookies expires the auth framework's session cookies on the
// response, whether or not teardown at the store succeeded.
func (s *Server) clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	secure := s.env == "PROD" || getScheme(r) == "https"
	for _, name := range s.config.GetSessionCookieNames() {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
