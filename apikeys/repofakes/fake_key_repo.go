package repofakes

import (
	"context"
	"sync"

	"github.com/robolearn/sso-gateway/apikeys"
)

var _ apikeys.Repo = (*FakeKeyRepo)(nil)

// FakeKeyRepo maps raw keys to canned verification outcomes.
type FakeKeyRepo struct {
	lock    sync.RWMutex
	keys    map[string]*apikeys.Key
	errors  map[string]error
	Default error // returned for unknown keys; nil defaults to ErrKeyInvalid
}

func NewFakeKeyRepo() *FakeKeyRepo {
	return &FakeKeyRepo{
		keys:   make(map[string]*apikeys.Key),
		errors: make(map[string]error),
	}
}

// AddKey registers a raw key that verifies successfully.
func (f *FakeKeyRepo) AddKey(rawKey string, key *apikeys.Key) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.keys[rawKey] = key
}

// FailKey registers a raw key that verifies with the given error.
func (f *FakeKeyRepo) FailKey(rawKey string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.errors[rawKey] = err
}

func (f *FakeKeyRepo) Verify(_ context.Context, rawKey string) (*apikeys.Key, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if err, ok := f.errors[rawKey]; ok {
		return nil, err
	}
	if key, ok := f.keys[rawKey]; ok {
		return key, nil
	}
	if f.Default != nil {
		return nil, f.Default
	}
	return nil, apikeys.ErrKeyInvalid
}
