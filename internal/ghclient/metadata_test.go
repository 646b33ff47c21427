package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metadataServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// TestResolveDefaultBranch covers the probe's full degradation ladder.
func TestResolveDefaultBranch(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		server := metadataServer(t, http.StatusOK, `{"default_branch":"develop"}`)
		branch, warning, err := New(server.URL, testSubject).ResolveDefaultBranch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "develop", branch)
		assert.Empty(t, warning)
	})

	t.Run("not found escalates", func(t *testing.T) {
		server := metadataServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
		branch, warning, err := New(server.URL, testSubject).ResolveDefaultBranch(context.Background())
		assert.ErrorIs(t, err, ErrRepoNotFound)
		assert.Empty(t, branch)
		assert.Empty(t, warning)
	})

	t.Run("auth failure degrades to warning", func(t *testing.T) {
		server := metadataServer(t, http.StatusForbidden, `{}`)
		branch, warning, err := New(server.URL, testSubject).ResolveDefaultBranch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, branch)
		assert.Contains(t, warning, "blocked")
	})

	t.Run("odd status degrades to warning", func(t *testing.T) {
		server := metadataServer(t, http.StatusBadGateway, ``)
		branch, warning, err := New(server.URL, testSubject).ResolveDefaultBranch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, branch)
		assert.Contains(t, warning, "502")
	})

	t.Run("unusable payload degrades to warning", func(t *testing.T) {
		server := metadataServer(t, http.StatusOK, `<html>not json</html>`)
		branch, warning, err := New(server.URL, testSubject).ResolveDefaultBranch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, branch)
		assert.Contains(t, warning, "payload")
	})

	t.Run("network failure degrades to warning", func(t *testing.T) {
		branch, warning, err := New("http://127.0.0.1:1", testSubject).ResolveDefaultBranch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, branch)
		assert.Contains(t, warning, "unavailable")
	})

	t.Run("cancellation escalates", func(t *testing.T) {
		server := metadataServer(t, http.StatusOK, `{"default_branch":"main"}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := New(server.URL, testSubject).ResolveDefaultBranch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
