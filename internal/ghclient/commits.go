package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/huangsam/devlens/schema"
)

// listPageSize is the per_page value for the commit list endpoint.
const listPageSize = 100

// listingCheckStride is how many pages may pass between explicit
// cancellation checks during the listing loop.
const listingCheckStride = 3

// listItem mirrors one element of the paginated commit list payload.
type listItem struct {
	SHA    string `json:"sha"`
	URL    string `json:"url"`
	Commit struct {
		Message string `json:"message"`
		Author  *struct {
			Date *time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// ListCommits walks the paginated commit list and returns the complete,
// deduplicated, insertion-ordered commit sequence.
//
// Termination is guaranteed even against a misbehaving server: a page URL
// that was already visited (cyclical next links included) ends the loop, as
// does an empty or non-list page body. Zero collected commits is a distinct
// terminal error, not an empty success.
func (c *Client) ListCommits(ctx context.Context, branch string, progress func(schema.Progress)) ([]schema.Commit, error) {
	pageURL := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d",
		c.baseURL, url.PathEscape(c.subject.Owner), url.PathEscape(c.subject.Repo), listPageSize)
	if branch != "" {
		pageURL += "&sha=" + url.QueryEscape(branch)
	}

	visited := make(map[string]struct{})
	seen := make(map[string]struct{})
	var commits []schema.Commit

	for page := 1; ; page++ {
		// Cycle guard: a repeated URL means the server is looping.
		if _, done := visited[pageURL]; done {
			break
		}
		visited[pageURL] = struct{}{}

		// Periodic cancellation check so a long listing stays responsive.
		if page%listingCheckStride == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		resp, err := c.getJSON(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		if !resp.OK {
			return nil, classifyListingError(resp)
		}

		// A non-list or empty body is the natural end of pagination.
		var items []listItem
		if resp.JSON == nil || json.Unmarshal(resp.JSON, &items) != nil || len(items) == 0 {
			break
		}

		for _, item := range items {
			if _, dup := seen[item.SHA]; dup {
				continue
			}
			seen[item.SHA] = struct{}{}
			commit := schema.Commit{
				SHA:       item.SHA,
				Message:   item.Commit.Message,
				DetailURL: item.URL,
			}
			if item.Commit.Author != nil {
				commit.AuthoredAt = item.Commit.Author.Date
			}
			commits = append(commits, commit)
		}

		// The total is unknowable until pagination completes.
		if progress != nil {
			progress(schema.Progress{Current: len(commits), Total: -1, Percent: -1})
		}

		next := ParseLinkHeader(resp.Header.Get("Link"))["next"]
		if next == "" {
			break
		}
		pageURL = next
	}

	if len(commits) == 0 {
		return nil, ErrNoCommits
	}
	return commits, nil
}
