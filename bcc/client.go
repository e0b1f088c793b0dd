/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
)

const (
	DefaultAPIBase = "https://beta.boylstonchess.org/api"
	DefaultWebBase = "https://boylstonchess.org"

	// registrations change during the day of an event
	entriesMaxAge = 10 * time.Minute
)

// Client fetches event information from the Boylston Chess Club.
type Client struct {
	httpClient *http.Client
	apiBase    string
	webBase    string
}

// NewClient returns a Client whose requests go through the shared web cache.
func NewClient(ctx context.Context) *Client {
	return NewClientWith(internal.NewCachedHttpClient(ctx, entriesMaxAge),
		DefaultAPIBase, DefaultWebBase)
}

// NewClientWith returns a Client using httpClient against the given API and
// website roots.
func NewClientWith(httpClient *http.Client, apiBase, webBase string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		apiBase:    apiBase,
		webBase:    webBase,
	}
}

func (client *Client) get(ctx context.Context, url string,
	accept string) (*http.Response, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return resp, nil
}

// getJSON decodes the JSON document at url into out.
func (client *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := client.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// fetchDoc gets the HTML document at the given URL.
func (client *Client) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	resp, err := client.get(ctx, url, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}
