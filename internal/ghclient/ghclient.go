// Package ghclient implements commit-history acquisition against the GitHub REST API.
package ghclient

import (
	"net/http"
	"time"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
)

// requestTimeout bounds a single API call. The per-subject context still
// governs the overall run, so this only catches stuck connections.
const requestTimeout = 30 * time.Second

// Client talks to the GitHub REST API for a single subject.
type Client struct {
	httpClient *http.Client
	baseURL    string
	subject    schema.Subject
}

var _ contract.CommitSource = &Client{} // Compile-time check

// New creates a Client for the given subject. The base URL has no trailing
// slash; tests point it at an httptest server.
func New(baseURL string, subject schema.Subject) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		subject:    subject,
	}
}

// NewFactory returns a SourceFactory bound to the given API base URL.
func NewFactory(baseURL string) contract.SourceFactory {
	return func(subject schema.Subject) contract.CommitSource {
		return New(baseURL, subject)
	}
}

// headers builds the request headers for every API call.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/vnd.github+json")
	if c.subject.Token != "" {
		h.Set("Authorization", "Bearer "+c.subject.Token)
	}
	return h
}
