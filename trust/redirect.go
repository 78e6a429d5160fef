package trust

import (
	"net/url"
	"strings"

	"github.com/robolearn/sso-gateway/clients"
)

// Validator validates redirect candidates against a freshly computed origin
// allowlist. It holds the immutable trust configuration, not a cached set:
// every call to IsValidRedirect recomputes the allowlist so a validation can
// never be wider than the current configuration.
type Validator struct {
	baseURL      string
	registry     *clients.Registry
	extraOrigins string
}

func NewValidator(baseURL string, registry *clients.Registry, extraOrigins string) *Validator {
	return &Validator{
		baseURL:      baseURL,
		registry:     registry,
		extraOrigins: extraOrigins,
	}
}

// Origins recomputes the allowlist from the validator's trust sources.
func (v *Validator) Origins() OriginSet {
	return Origins(v.baseURL, v.registry, v.extraOrigins)
}

// IsValidRedirect reports whether candidate is safe to redirect to.
func (v *Validator) IsValidRedirect(candidate string) bool {
	return IsValidRedirect(candidate, v.Origins())
}

// IsValidRedirect is total over all string inputs and never panics.
// Rules, in order:
//  1. Empty or whitespace-only input is invalid.
//  2. A relative path ("/...") is always same-origin safe and valid, but a
//     protocol-relative URL ("//evil.com") is not a path and is rejected.
//  3. Anything not starting with http:// or https:// is invalid.
//  4. Unparseable input is invalid.
//  5. The candidate's origin must be a member of the allowlist.
func IsValidRedirect(candidate string, origins OriginSet) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}

	if strings.HasPrefix(candidate, "/") {
		return !strings.HasPrefix(candidate, "//")
	}

	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		return false
	}

	origin, ok := parseOrigin(candidate)
	if !ok {
		return false
	}
	return origins.Contains(origin)
}

// AppendState re-parses an already-validated redirect URI and appends the
// OIDC state parameter to its query string. Empty state leaves the URI as-is.
func AppendState(validatedURI, state string) string {
	if state == "" {
		return validatedURI
	}
	u, err := url.Parse(validatedURI)
	if err != nil {
		// Unreachable for a validated URI; keep the untouched URI rather
		// than dropping the redirect.
		return validatedURI
	}
	q := u.Query()
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String()
}
