package api

import "time"

// DefaultBaseURL is the single source of truth for the CLI API target.
const DefaultBaseURL = "http://localhost:8080"

// NewDefaultClient builds a client pointed at the default Chanhub API URL.
func NewDefaultClient(apiKey string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, apiKey, timeout...)
}
