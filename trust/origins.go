// Package trust derives the set of origins the SSO server will redirect a
// browser to and validates untrusted redirect candidates against it. A
// mistake here is an open redirect (CWE-601), so every rule fails closed: a
// candidate is never trusted unless its origin is positively on the allowlist.
package trust

import (
	"net/url"
	"sort"
	"strings"

	"github.com/robolearn/sso-gateway/clients"
	"github.com/rs/zerolog/log"
)

// OriginSet is a set of "scheme://host[:port]" strings. Path, query and
// fragment never take part in comparisons.
type OriginSet map[string]struct{}

func (s OriginSet) add(origin string) {
	s[origin] = struct{}{}
}

// Contains reports whether origin is a member of the set.
func (s OriginSet) Contains(origin string) bool {
	_, ok := s[origin]
	return ok
}

// Strings returns the members sorted, for logging and tests.
func (s OriginSet) Strings() []string {
	out := make([]string, 0, len(s))
	for o := range s {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Origins computes the allowlist from the three trust sources:
// the server's own base URL, the redirect URLs of every non-disabled trusted
// client, and the operator's comma-separated extra origins. Each entry is
// parsed independently; a malformed entry is skipped and never aborts the
// whole computation.
func Origins(baseURL string, registry *clients.Registry, extraOrigins string) OriginSet {
	set := make(OriginSet)

	if origin, ok := parseOrigin(baseURL); ok {
		set.add(origin)
	} else if baseURL != "" {
		log.Warn().Str("base_url", baseURL).Msg("[trust] base URL is not a valid origin, skipping")
	}

	for _, client := range registry.List() {
		if client.Disabled {
			continue
		}
		for _, redirectURL := range client.RedirectURLs {
			origin, ok := parseOrigin(redirectURL)
			if !ok {
				log.Warn().Str("client_id", client.ID).Str("redirect_url", redirectURL).
					Msg("[trust] invalid redirect URL in trusted clients, skipping")
				continue
			}
			set.add(origin)
		}
	}

	for _, entry := range strings.Split(extraOrigins, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.HasPrefix(entry, "http://") && !strings.HasPrefix(entry, "https://") {
			log.Warn().Str("origin", entry).Msg("[trust] extra origin must be http(s), skipping")
			continue
		}
		if origin, ok := parseOrigin(entry); ok {
			set.add(origin)
		}
	}

	return set
}

// parseOrigin extracts "scheme://host[:port]" from an absolute URL string.
// The host comes from the parser's authority fields, never a string split,
// so embedded credentials ("https://trusted.example@evil.com") resolve to
// the real host. Default ports collapse to match browser origin semantics.
func parseOrigin(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	return scheme + "://" + host, true
}
