// Package http provides the HTTP transport for docscope: a server exposing
// tree listings and selection state, and a client implementing the same
// contracts over the wire.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/docscope/docscope"
	"golang.org/x/time/rate"
)

// DefaultClientTimeout is the default timeout for client requests.
const DefaultClientTimeout = 10 * time.Second

// Ensure Client implements the client-side contracts at compile time.
var (
	_ docscope.Lister       = (*Client)(nil)
	_ docscope.StateService = (*Client)(nil)
)

// Client talks to a docscope server over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultClientTimeout (10s) if not specified.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit throttles requests to rps per second with the given burst.
// Useful when many tree expansions hit a server that also serves searches.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		timeout: DefaultClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// ListChildren fetches the entries directly under rel.
func (c *Client) ListChildren(ctx context.Context, rel string) ([]docscope.Node, error) {
	endpoint := c.baseURL + "/tree?rel=" + url.QueryEscape(docscope.Normalize(rel))

	var nodes []docscope.Node
	if err := c.get(ctx, endpoint, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// LoadState fetches the saved selection.
func (c *Client) LoadState(ctx context.Context) (*docscope.PathSet, error) {
	var payload docscope.Payload
	if err := c.get(ctx, c.baseURL+"/state", &payload); err != nil {
		return nil, err
	}
	return docscope.FromPayload(payload), nil
}

// SaveState posts the selection and returns the canonical form the server
// stored, which may differ from what was sent.
func (c *Client) SaveState(ctx context.Context, set *docscope.PathSet) (*docscope.PathSet, error) {
	body, err := json.Marshal(set.Payload())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/state", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload docscope.Payload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return docscope.FromPayload(payload), nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return docscope.Errorf(docscope.EUNAVAILABLE, "request to %s failed: %v", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return docscope.Errorf(docscope.EUNAVAILABLE, "reading response from %s: %v", req.URL.Path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return docscope.Errorf(docscope.EINVALID, "malformed response from %s", req.URL.Path)
	}
	return nil
}

// errorFromResponse decodes the server's error body when present and falls
// back to the status code otherwise.
func (c *Client) errorFromResponse(resp *http.Response) error {
	code := docscope.EUNAVAILABLE
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = docscope.EINVALID
	case http.StatusNotFound:
		code = docscope.ENOTFOUND
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return docscope.Errorf(code, "%s", body.Error)
	}
	return docscope.Errorf(code, "%s returned HTTP %d", resp.Request.URL.Path, resp.StatusCode)
}

// errorResponse is the wire form of a server error.
type errorResponse struct {
	Error string `json:"error"`
}
