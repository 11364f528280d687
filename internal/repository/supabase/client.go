// Package supabase implements the repository contracts against a hosted
// Supabase project: postgrest for rows, the storage API for blobs, and
// gotrue for accounts. Collaborator errors are classified into the shared
// sentinel errors here and never leak supabase types upward.
package supabase

import (
	"fmt"
	"strings"

	supa "github.com/supabase-community/supabase-go"
)

// NewClient connects to a Supabase project. The key decides the access
// level: the anon key for end-user traffic, the service-role key for the
// admin upload/delete surface.
func NewClient(projectURL, apiKey string) (*supa.Client, error) {
	if projectURL == "" || apiKey == "" {
		return nil, fmt.Errorf("supabase URL and API key must be configured")
	}

	client, err := supa.NewClient(projectURL, apiKey, &supa.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return client, nil
}

// isNoRows reports whether a postgrest error means "query succeeded, no
// matching row". PGRST116 is postgrest's code for a .single() miss.
func isNoRows(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "PGRST116") ||
		strings.Contains(msg, "multiple (or no) rows returned") ||
		strings.Contains(msg, "0 rows")
}

// isUniqueViolation reports whether a postgrest error is a uniqueness
// constraint violation (Postgres error code 23505).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// isInvalidCredentials reports whether a gotrue error means the email or
// password was wrong. gotrue answers these with HTTP 400 and an
// "invalid_grant" / "Invalid login credentials" body rather than a typed
// error, so the classification is textual.
func isInvalidCredentials(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid_grant") ||
		strings.Contains(msg, "invalid login credentials") ||
		strings.Contains(msg, "status 400")
}
