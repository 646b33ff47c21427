package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// repoMetadata mirrors the fields we need from the repository endpoint.
type repoMetadata struct {
	DefaultBranch string `json:"default_branch"`
}

// ResolveDefaultBranch probes the repository metadata for its default branch.
//
// The probe is best effort: only a true 404 (repository does not exist) and
// cancellation escalate. Auth failures, rate limits, odd statuses and
// network errors all degrade to a warning plus an empty branch so the
// pipeline can proceed unpinned.
func (c *Client) ResolveDefaultBranch(ctx context.Context) (string, string, error) {
	target := fmt.Sprintf("%s/repos/%s/%s",
		c.baseURL, url.PathEscape(c.subject.Owner), url.PathEscape(c.subject.Repo))

	resp, err := c.getJSON(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return "", "", err
		}
		return "", fmt.Sprintf("metadata unavailable (%v), continuing without a pinned branch", err), nil
	}

	switch {
	case resp.Status == http.StatusNotFound:
		return "", "", ErrRepoNotFound
	case resp.Status == http.StatusUnauthorized, resp.Status == http.StatusForbidden:
		return "", fmt.Sprintf("metadata blocked (status %d), falling back to the default listing", resp.Status), nil
	case !resp.OK:
		return "", fmt.Sprintf("metadata returned status %d, falling back to the default listing", resp.Status), nil
	}

	var meta repoMetadata
	if resp.JSON == nil || json.Unmarshal(resp.JSON, &meta) != nil {
		return "", "metadata payload was not usable, falling back to the default listing", nil
	}
	return meta.DefaultBranch, "", nil
}
