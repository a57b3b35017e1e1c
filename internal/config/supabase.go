package config

import (
	"errors"
	"strings"
	"time"
)

// DefaultSupabaseTimeout bounds a single PostgREST call.
const DefaultSupabaseTimeout = 10 * time.Second

// ErrMissingStoreCredentials is returned when the hosted store URL or the
// service-role key is not configured.
var ErrMissingStoreCredentials = errors.New("missing SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY")

// Credentials is what a store client needs to make a privileged write.
type Credentials struct {
	// URL is the base URL of the hosted project, e.g. https://xyz.supabase.co
	URL string

	// ServiceRoleKey bypasses row-level security. Server side only.
	ServiceRoleKey string
}

// CredentialsProvider hands out store credentials. Stores ask on every
// call, but SupabaseConfig only serves the snapshot LoadConfig read at
// startup; changing the environment later has no effect.
//
// Implementations must return ErrMissingStoreCredentials (or wrap it) when
// either value is absent.
type CredentialsProvider interface {
	Credentials() (Credentials, error)
}

// SupabaseConfig holds the hosted store settings.
//
// URL and ServiceRoleKey are read from SUPABASE_URL and
// SUPABASE_SERVICE_ROLE_KEY. They are intentionally not tagged as required:
// see LoadConfig.
type SupabaseConfig struct {
	URL            string        `koanf:"url"`
	ServiceRoleKey string        `koanf:"service_role_key"`
	Timeout        time.Duration `koanf:"timeout"`
}

// Credentials implements CredentialsProvider.
func (c SupabaseConfig) Credentials() (Credentials, error) {
	url := strings.TrimRight(strings.TrimSpace(c.URL), "/")
	key := strings.TrimSpace(c.ServiceRoleKey)

	if url == "" || key == "" {
		return Credentials{}, ErrMissingStoreCredentials
	}

	return Credentials{URL: url, ServiceRoleKey: key}, nil
}
