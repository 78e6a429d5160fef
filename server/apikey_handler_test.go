package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/robolearn/sso-gateway/apikeys"
	"github.com/robolearn/sso-gateway/server"
	"github.com/stretchr/testify/require"
)

func (f *testFixture) verifyKey(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, server.RouteAPIKeyVerify, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decodeVerifyResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAPIKeyVerify_MissingKey(t *testing.T) {
	f := setupTestFixture(t)

	for _, body := range []string{`{}`, `{"key":""}`, `not json`} {
		rec := f.verifyKey(t, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)

		resp := decodeVerifyResponse(t, rec)
		require.Equal(t, false, resp["valid"])
		require.Equal(t, "MISSING_KEY", resp["error"].(map[string]any)["code"])
	}
}

func TestAPIKeyVerify_FailureTaxonomy(t *testing.T) {
	f := setupTestFixture(t)
	f.keys.FailKey("rl_disabled.x", apikeys.ErrKeyDisabled)
	f.keys.FailKey("rl_expired.x", apikeys.ErrKeyExpired)

	cases := []struct {
		key  string
		code string
	}{
		{"rl_disabled.x", "DISABLED_API_KEY"},
		{"rl_expired.x", "EXPIRED_API_KEY"},
		{"rl_unknown.x", "INVALID_API_KEY"},
	}
	for _, tc := range cases {
		rec := f.verifyKey(t, `{"key":"`+tc.key+`"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code, tc.key)

		resp := decodeVerifyResponse(t, rec)
		require.Equal(t, false, resp["valid"])
		require.Equal(t, tc.code, resp["error"].(map[string]any)["code"])
	}
}

func TestAPIKeyVerify_StoreFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.keys.FailKey("rl_boom.x", errors.New("bolt: database corrupted"))

	rec := f.verifyKey(t, `{"key":"rl_boom.x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeVerifyResponse(t, rec)
	require.Equal(t, false, resp["valid"])
	errBody := resp["error"].(map[string]any)
	require.Equal(t, "INTERNAL_ERROR", errBody["code"])
	require.NotContains(t, errBody["message"], "bolt", "store internals must not leak")
}

func TestAPIKeyVerify_Success(t *testing.T) {
	f := setupTestFixture(t)

	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	f.keys.AddKey("rl_good.s3cret", &apikeys.Key{
		ID:        "key-1",
		Name:      "ingest-service",
		UserID:    "user-1",
		Enabled:   true,
		ExpiresAt: &expires,
		Metadata:  map[string]any{"env": "prod"},
	})

	rec := f.verifyKey(t, `{"key":"rl_good.s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	resp := decodeVerifyResponse(t, rec)
	require.Equal(t, true, resp["valid"])

	key := resp["key"].(map[string]any)
	require.Equal(t, "key-1", key["id"])
	require.Equal(t, "ingest-service", key["name"])
	require.Equal(t, "user-1", key["userId"])
	require.Equal(t, true, key["enabled"])
	require.Equal(t, "prod", key["metadata"].(map[string]any)["env"])

	// The projection is the whole payload; no secret material may appear.
	for field := range key {
		require.Contains(t, []string{"id", "name", "userId", "enabled", "expiresAt", "metadata"}, field)
	}
	require.NotContains(t, rec.Body.String(), "s3cret")
}

func TestAPIKeyVerify_CORSPreflight(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodOptions, server.RouteAPIKeyVerify, nil)
	req.Header.Set("Origin", "https://service.example.com")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestWellKnownOpenIDConfig(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteWellKnownOpenIDConfig, nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, testBaseURL, doc["issuer"])
	require.Equal(t, testBaseURL+server.RouteEndSession, doc["end_session_endpoint"])
}
