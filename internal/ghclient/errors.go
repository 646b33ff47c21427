package ghclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the acquisition pipeline. All of them are fatal to the
// subject whose run raised them; cancellation is reported separately via
// context.Canceled and is never wrapped into these.
var (
	// ErrRepoNotFound means the repository does not exist or is invisible (404).
	ErrRepoNotFound = errors.New("repository not found")

	// ErrUnauthorized means the credential was rejected on listing (401).
	ErrUnauthorized = errors.New("unauthorized: check your access token")

	// ErrRateLimited means listing was forbidden or rate limited (403).
	ErrRateLimited = errors.New("forbidden or rate limited")

	// ErrNoCommits means pagination finished without collecting any commits.
	ErrNoCommits = errors.New("no commits found")

	// ErrUnexpectedStatus means the API returned a status outside the taxonomy.
	ErrUnexpectedStatus = errors.New("unexpected API status")
)

// classifyListingError maps a non-ok listing response to a fatal error.
// Rate-limit quota headers are surfaced in the message when present.
func classifyListingError(resp *Response) error {
	switch resp.Status {
	case http.StatusNotFound:
		return ErrRepoNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		remaining := resp.Header.Get("X-RateLimit-Remaining")
		reset := resp.Header.Get("X-RateLimit-Reset")
		if remaining != "" || reset != "" {
			return fmt.Errorf("%w (remaining=%s, reset=%s)", ErrRateLimited, remaining, reset)
		}
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.Status)
	}
}
