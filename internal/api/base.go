package api

import "os"

// DefaultBaseURL matches the backend's local development address.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// ResolveBaseURL picks the server address: WAORDER_API_URL wins, then
// the configured value, then the default.
func ResolveBaseURL(configured string) string {
	if env := os.Getenv("WAORDER_API_URL"); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return DefaultBaseURL
}
