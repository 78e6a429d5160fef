package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/robolearn/sso-gateway/apikeys"
	"github.com/rs/zerolog/log"
)

// Error codes returned by the verify endpoint. Closed taxonomy: external
// callers switch on these, so new store failure modes map onto an existing
// code rather than inventing one.
const (
	codeMissingKey  = "MISSING_KEY"
	codeInvalidKey  = "INVALID_API_KEY"
	codeExpiredKey  = "EXPIRED_API_KEY"
	codeDisabledKey = "DISABLED_API_KEY"
	codeInternal    = "INTERNAL_ERROR"
)

type verifyRequest struct {
	Key string `json:"key"`
}

type verifyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type verifyResponse struct {
	Valid bool         `json:"valid"`
	Key   *apikeys.Key `json:"key,omitempty"`
	Error *verifyError `json:"error,omitempty"`
}

// APIKeyVerifyHandler verifies an API key for M2M authentication. External
// backend services call this before processing requests; the response never
// includes the raw or hashed secret.
func (s *Server) APIKeyVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w)

		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
			writeJSON(w, http.StatusBadRequest, verifyResponse{
				Valid: false,
				Error: &verifyError{
					Code:    codeMissingKey,
					Message: "API key is required in request body",
				},
			})
			return
		}

		key, err := s.keys.Verify(r.Context(), req.Key)
		if err != nil {
			s.writeVerifyFailure(w, err)
			return
		}

		writeJSON(w, http.StatusOK, verifyResponse{Valid: true, Key: key})
	}
}

func (s *Server) writeVerifyFailure(w http.ResponseWriter, err error) {
	var code string
	switch {
	case errors.Is(err, apikeys.ErrKeyExpired):
		code = codeExpiredKey
	case errors.Is(err, apikeys.ErrKeyDisabled):
		code = codeDisabledKey
	case errors.Is(err, apikeys.ErrKeyInvalid):
		code = codeInvalidKey
	default:
		// Store failure, not a verdict on the key. Never defaults to valid.
		log.Err(err).Msg("[APIKeyVerify] credential store error")
		writeJSON(w, http.StatusInternalServerError, verifyResponse{
			Valid: false,
			Error: &verifyError{Code: codeInternal, Message: "Internal server error"},
		})
		return
	}

	writeJSON(w, http.StatusUnauthorized, verifyResponse{
		Valid: false,
		Error: &verifyError{Code: code, Message: err.Error()},
	})
}

// APIKeyPreflightHandler answers CORS preflight for the verify endpoint.
// The endpoint is intentionally callable cross-origin by backend services.
func (s *Server) APIKeyPreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", s.config.GetAllowedMethods())
	w.Header().Set("Access-Control-Allow-Headers", s.config.GetAllowedHeaders())
}
