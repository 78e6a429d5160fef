package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robolearn/sso-gateway/sessions"
	"github.com/stretchr/testify/require"
)

func TestHTTPStore_Terminate(t *testing.T) {
	t.Run("forwards cookies to the sign-out endpoint", func(t *testing.T) {
		var gotMethod, gotCookie string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCookie = r.Header.Get("Cookie")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		store := sessions.NewHTTPStore(srv.URL + "/api/auth/sign-out")
		err := store.Terminate(context.Background(), "robolearn.session_token=tok123")
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, "robolearn.session_token=tok123", gotCookie)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		store := sessions.NewHTTPStore(srv.URL)
		err := store.Terminate(context.Background(), "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable store is an error", func(t *testing.T) {
		store := sessions.NewHTTPStore("http://127.0.0.1:1/sign-out")
		err := store.Terminate(context.Background(), "")
		require.Error(t, err)
	})
}
