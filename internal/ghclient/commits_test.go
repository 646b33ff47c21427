package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/devlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSubject = schema.Subject{Owner: "acme", Repo: "widget"}

// listServer serves canned pages keyed by the page query parameter and
// chains them with Link headers.
func listServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/commits", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		body, ok := pages[page]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if next, ok := pages[nextPageKey(page)]; ok && next != "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widget/commits?page=%s>; rel="next"`, server.URL, nextPageKey(page)))
		}
		_, _ = fmt.Fprint(w, body)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func nextPageKey(page string) string {
	switch page {
	case "1":
		return "2"
	case "2":
		return "3"
	default:
		return ""
	}
}

func listItemJSON(sha, message string) string {
	return fmt.Sprintf(`{"sha":%q,"url":"https://detail/%s","commit":{"message":%q,"author":{"date":"2026-03-02T10:15:00Z"}}}`, sha, sha, message)
}

// TestListCommitsPagination walks multiple pages and preserves order.
func TestListCommitsPagination(t *testing.T) {
	server := listServer(t, map[string]string{
		"1": "[" + listItemJSON("aaa", "feat: one") + "," + listItemJSON("bbb", "fix: two") + "]",
		"2": "[" + listItemJSON("ccc", "docs: three") + "]",
	})
	client := New(server.URL, testSubject)

	var progressCalls int
	commits, err := client.ListCommits(context.Background(), "", func(p schema.Progress) {
		progressCalls++
		assert.Equal(t, -1, p.Total) // unknowable until pagination completes
	})
	require.NoError(t, err)

	require.Len(t, commits, 3)
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "bbb", commits[1].SHA)
	assert.Equal(t, "ccc", commits[2].SHA)
	assert.Equal(t, "feat: one", commits[0].Message)
	assert.NotNil(t, commits[0].AuthoredAt)
	assert.Equal(t, "https://detail/aaa", commits[0].DetailURL)
	assert.Equal(t, 2, progressCalls) // once per page
}

// TestListCommitsDedup drops a SHA repeated across page boundaries, which
// happens when new commits land mid-pagination.
func TestListCommitsDedup(t *testing.T) {
	server := listServer(t, map[string]string{
		"1": "[" + listItemJSON("aaa", "one") + "," + listItemJSON("bbb", "two") + "]",
		"2": "[" + listItemJSON("bbb", "two") + "," + listItemJSON("ccc", "three") + "]",
	})
	client := New(server.URL, testSubject)

	commits, err := client.ListCommits(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, []string{commits[0].SHA, commits[1].SHA, commits[2].SHA})
}

// TestListCommitsCycleGuard terminates when the server loops its next links.
func TestListCommitsCycleGuard(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/commits", func(w http.ResponseWriter, _ *http.Request) {
		// Always point next back at the first page URL.
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widget/commits?per_page=100>; rel="next"`, server.URL))
		_, _ = fmt.Fprint(w, "["+listItemJSON("aaa", "one")+"]")
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, testSubject)
	commits, err := client.ListCommits(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Len(t, commits, 1)
}

// TestListCommitsEmpty reports the distinct no-commits error.
func TestListCommitsEmpty(t *testing.T) {
	server := listServer(t, map[string]string{"1": "[]"})
	client := New(server.URL, testSubject)

	commits, err := client.ListCommits(context.Background(), "", nil)
	assert.Nil(t, commits)
	assert.ErrorIs(t, err, ErrNoCommits)
}

// TestListCommitsErrorTaxonomy maps HTTP statuses to sentinel errors.
func TestListCommitsErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		wantErr error
	}{
		{"not found", http.StatusNotFound, nil, ErrRepoNotFound},
		{"unauthorized", http.StatusUnauthorized, nil, ErrUnauthorized},
		{"rate limited", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "0", "X-RateLimit-Reset": "1700000000"}, ErrRateLimited},
		{"plain forbidden", http.StatusForbidden, nil, ErrRateLimited},
		{"server error", http.StatusInternalServerError, nil, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := New(server.URL, testSubject)
			_, err := client.ListCommits(context.Background(), "", nil)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.headers != nil {
				assert.Contains(t, err.Error(), "remaining=0")
			}
		})
	}
}

// TestListCommitsCancellation aborts a listing that is already under way.
func TestListCommitsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var server *httptest.Server
	page := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/commits", func(w http.ResponseWriter, _ *http.Request) {
		page++
		if page == 2 {
			cancel() // cancel mid-listing; the loop must notice and bail
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widget/commits?page=%d>; rel="next"`, server.URL, page+1))
		_, _ = fmt.Fprint(w, "["+listItemJSON(fmt.Sprintf("sha%d", page), "one")+"]")
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, testSubject)
	_, err := client.ListCommits(ctx, "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestListCommitsBranchPin forwards the branch as the sha parameter.
func TestListCommitsBranchPin(t *testing.T) {
	var gotSHA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSHA = r.URL.Query().Get("sha")
		_, _ = fmt.Fprint(w, "["+listItemJSON("aaa", "one")+"]")
	}))
	defer server.Close()

	client := New(server.URL, testSubject)
	_, err := client.ListCommits(context.Background(), "release-2.0", nil)
	require.NoError(t, err)
	assert.Equal(t, "release-2.0", gotSHA)
}
