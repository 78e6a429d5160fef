package clients

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robolearn/sso-gateway/internal/errors"
)

// Registry is the process-wide catalog of trusted clients. It is validated
// when constructed and read-only afterwards, so concurrent reads need no
// synchronization. Administrative changes go through redeployment, not
// in-place mutation.
type Registry struct {
	clients []*Client
	byID    map[string]*Client
}

// NewRegistry validates the client list and builds a registry from it.
// A client without an ID, with a duplicate ID, or with an empty redirect
// list is a configuration error, not something to degrade around.
func NewRegistry(list []*Client) (*Registry, error) {
	r := &Registry{
		clients: make([]*Client, 0, len(list)),
		byID:    make(map[string]*Client, len(list)),
	}
	for i, c := range list {
		if c == nil {
			continue
		}
		if c.ID == "" {
			return nil, fmt.Errorf("trusted client at index %d: %w", i, errors.ErrClientMissingID)
		}
		if _, exists := r.byID[c.ID]; exists {
			return nil, fmt.Errorf("trusted client %q: %w", c.ID, errors.ErrClientDuplicateID)
		}
		if len(c.RedirectURLs) == 0 {
			return nil, fmt.Errorf("trusted client %q: %w", c.ID, errors.ErrClientNoRedirectURLs)
		}
		r.clients = append(r.clients, c)
		r.byID[c.ID] = c
	}
	return r, nil
}

// List returns the registered clients in configuration order.
func (r *Registry) List() []*Client {
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Get returns the client registered under clientID.
func (r *Registry) Get(clientID string) (*Client, error) {
	c, ok := r.byID[clientID]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", clientID, errors.ErrClientNotFound)
	}
	return c, nil
}

// LoadFile reads a JSON array of trusted clients and builds a registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[clients LoadFile] read %s: %w", path, err)
	}
	var list []*Client
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("[clients LoadFile] parse %s: %w", path, err)
	}
	return NewRegistry(list)
}
