// Package supabase provides a lightweight client for the hosted Supabase
// datastore and auth service. Uses raw HTTP calls (no SDK) to minimize
// external dependencies.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is the normalized outcome of one store call: the raw upstream
// status code and the parsed body. Transport failures are folded into a
// synthetic 500 result; the caller decides whether that is fatal.
type Result struct {
	Status int
	Data   json.RawMessage
}

// OK reports whether the result carries a 2xx status.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Client talks to the hosted store's REST interface and auth endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client for the given project base URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do performs a single unconditional round trip against the store's REST
// interface. path is the resource name plus any query filters (see Query).
// No retries, no caching; non-2xx upstream statuses pass through untouched.
func (c *Client) Do(ctx context.Context, method, path string, body any) Result {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return transportFailure(err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/rest/v1/"+path, reader)
	if err != nil {
		return transportFailure(err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	// Ask the store to echo written rows back so callers get record IDs.
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}
	return Result{Status: resp.StatusCode, Data: data}
}

func transportFailure(err error) Result {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return Result{Status: http.StatusInternalServerError, Data: payload}
}
