package config

import "strings"

// TrustConfig exposes the configuration that feeds the origin allowlist and
// the two external collaborators (session store and credential store).
type TrustConfig interface {
	GetExtraOrigins() string
	GetTrustedClientsFile() string
	GetSessionCookieNames() []string
	GetSignOutURL() string
	GetInternalClientID() string
	GetInternalClientSecret() string
	GetClientProductionURL() string
	GetAdminProductionURL() string
}

type Trust struct{}

var _ TrustConfig = Trust{}

// GetExtraOrigins returns the operator-supplied allowlist additions as a raw
// comma-separated string (e.g., "https://docs.example.com, https://forum.example.com").
// Entries are trimmed and validated when the allowlist is computed, not here.
func (Trust) GetExtraOrigins() string {
	return GetEnv("ALLOWED_ORIGINS", "")
}

// GetTrustedClientsFile returns the path of a JSON file holding the trusted
// client registry. Empty means the built-in internal clients are used.
func (Trust) GetTrustedClientsFile() string {
	return GetEnv("TRUSTED_CLIENTS_FILE", "")
}

// GetSessionCookieNames returns the cookies cleared on logout responses.
func (Trust) GetSessionCookieNames() []string {
	raw := GetEnv("SESSION_COOKIE_NAMES", "robolearn.session_token,robolearn.session_data")
	names := []string{}
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// GetSignOutURL returns the auth framework's internal sign-out endpoint.
func (Trust) GetSignOutURL() string {
	return GetEnv("SIGN_OUT_URL", "http://localhost:3001/api/auth/sign-out")
}

func (Trust) GetInternalClientID() string {
	return GetEnv("INTERNAL_CLIENT_ID", "internal-dashboard")
}

func (Trust) GetInternalClientSecret() string {
	return GetEnv("INTERNAL_CLIENT_SECRET", "")
}

func (Trust) GetClientProductionURL() string {
	return GetEnv("CLIENT_PRODUCTION_URL", "")
}

func (Trust) GetAdminProductionURL() string {
	return GetEnv("ADMIN_PRODUCTION_URL", "")
}
