package clients

type ClientType string

const (
	ClientTypeConfidential ClientType = "confidential" // Can keep secrets (server-side apps)
	ClientTypePublic       ClientType = "public"       // Cannot keep secrets (SPAs, mobile apps)
)

// Client is a trusted OAuth relying party registered with the SSO server.
// Secret is a pointer: nil means a public/PKCE client, not an empty secret.
type Client struct {
	ID           string         `json:"clientId"`
	Secret       *string        `json:"clientSecret,omitempty"`
	Name         string         `json:"name"`
	Type         ClientType     `json:"type"`
	RedirectURLs []string       `json:"redirectUrls"`
	SkipConsent  bool           `json:"skipConsent"`
	Disabled     bool           `json:"disabled"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// IsPublic returns true if the client is a public client
func (c *Client) IsPublic() bool {
	return c.Type == ClientTypePublic || c.Secret == nil
}

// HasRedirectURL checks whether uri is one of the client's registered redirect URLs
func (c *Client) HasRedirectURL(uri string) bool {
	for _, u := range c.RedirectURLs {
		if u == uri {
			return true
		}
	}
	return false
}
