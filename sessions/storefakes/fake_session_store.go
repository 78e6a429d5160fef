package storefakes

import (
	"context"
	"sync"

	"github.com/robolearn/sso-gateway/sessions"
)

var _ sessions.Store = (*FakeSessionStore)(nil)

// FakeSessionStore records Terminate calls and returns a configurable error.
type FakeSessionStore struct {
	TerminateErr error

	lock  sync.Mutex
	calls []string
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

func (f *FakeSessionStore) Terminate(_ context.Context, cookieHeader string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, cookieHeader)
	return f.TerminateErr
}

// Calls returns the cookie headers passed to Terminate, in order.
func (f *FakeSessionStore) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}
