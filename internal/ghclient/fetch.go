package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response is the normalized shape of one API GET. Transport failures and
// cancellation surface as errors; everything else, including non-2xx
// statuses and non-JSON bodies, lands here so callers can classify it.
type Response struct {
	Status int
	OK     bool // Status in [200,300)
	Header http.Header
	JSON   json.RawMessage // nil when the body is not valid JSON
	Raw    string          // body text, preserved even when JSON is nil
}

// getJSON performs one GET against an absolute URL.
// JSON decode failure degrades to a nil JSON field, never to an error.
// A cancelled context propagates as the context's own error so callers can
// tell a user-initiated stop apart from a network failure.
func (c *Client) getJSON(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	req.Header = c.headers()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Do wraps the context error; unwrap it so errors.Is works
		// uniformly at the orchestrator.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	out := &Response{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Header: resp.Header,
		Raw:    string(body),
	}
	if json.Valid(body) {
		out.JSON = json.RawMessage(body)
	}
	return out, nil
}
