// Package provider is the HTTP client for the secondary-DNS hosting
// provider's REST API: the secondary zone inventory and the server
// bandwidth endpoints. Every call is a single attempt; a failed call is
// a failed run.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	publicPath  = "rest/v1"
	privatePath = "rest/private/v1"
)

type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a client for the given endpoint with the account
// credentials embedded in the URL authority. private selects the
// private-network base path variant.
func NewClient(endpoint, user, key string, private bool, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("api endpoint is required")
	}
	if user == "" || key == "" {
		return nil, fmt.Errorf("api user and key are required")
	}

	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse api endpoint %q: %w", endpoint, err)
	}
	base.User = url.UserPassword(user, key)

	apiPath := publicPath
	if private {
		apiPath = privatePath
	}
	base = base.JoinPath(apiPath)

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// do executes one API call. params, when non-nil, is marshalled inside
// the provider's {"parameters": ...} envelope. out, when non-nil,
// receives the decoded JSON response. Any non-2xx status or undecodable
// body is an error.
func (c *Client) do(ctx context.Context, method, path string, params, out interface{}) error {
	var bodyReader io.Reader
	if params != nil {
		data, err := json.Marshal(map[string]interface{}{"parameters": params})
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("api call: %s %s", method, u.Redacted())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
