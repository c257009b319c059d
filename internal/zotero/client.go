// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero queries the local Zotero HTTP API for top-level items.
package zotero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/zotlit/pkg/types"
)

// ErrUnreachable wraps connection failures to the local API so callers
// can turn them into a single user-facing message.
var ErrUnreachable = errors.New("local Zotero API unreachable")

// userPrefix is the library path segment of the local API. The local
// endpoint serves exactly one library, addressed as user 0.
const userPrefix = "/users/0"

// Client talks to the local Zotero API over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient builds a Client from config. The transport carries no proxy
// function: inherited proxy settings must never apply to the localhost
// connection.
func NewClient(cfg types.ZoteroConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &http.Transport{Proxy: nil},
		},
	}
}

// TopOptions holds query parameters for Top. A zero Limit fetches with
// no page-size bound.
type TopOptions struct {
	Limit     int
	Sort      string
	Direction string
}

// Top fetches top-level items (attachments of other items excluded by
// the API itself) with the given sort and page size.
func (c *Client) Top(ctx context.Context, opts TopOptions) ([]types.Item, error) {
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Direction != "" {
		params.Set("direction", opts.Direction)
	}

	reqURL := c.baseURL + userPrefix + "/items/top"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Zotero API returned HTTP %d", resp.StatusCode)
	}

	var items []types.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing Zotero response: %w", err)
	}
	return items, nil
}

// Count returns the number of top-level items in the library, read from
// the Total-Results header of a limit=1 query.
func (c *Client) Count(ctx context.Context) (int, error) {
	resp, err := c.get(ctx, c.baseURL+userPrefix+"/items/top?limit=1")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("Zotero API returned HTTP %d", resp.StatusCode)
	}

	total := resp.Header.Get("Total-Results")
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parsing Total-Results header %q: %w", total, err)
	}
	return n, nil
}

// Ping checks that the local API answers at all. Any transport error
// maps to ErrUnreachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL+userPrefix+"/items/top?limit=1")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}
