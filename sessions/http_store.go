package sessions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPStore calls the auth framework's sign-out endpoint over HTTP,
// forwarding the caller's cookies so the framework can resolve the session.
type HTTPStore struct {
	signOutURL string
	client     *http.Client
}

var _ Store = (*HTTPStore)(nil)

func NewHTTPStore(signOutURL string) *HTTPStore {
	return &HTTPStore{
		signOutURL: signOutURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPStore) Terminate(ctx context.Context, cookieHeader string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.signOutURL, nil)
	if err != nil {
		return fmt.Errorf("[sessions Terminate] build request: %w", err)
	}
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("[sessions Terminate] sign-out call: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("[sessions Terminate] sign-out returned status %d", resp.StatusCode)
	}
	return nil
}
