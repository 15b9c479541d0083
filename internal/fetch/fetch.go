package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultUserAgent = "LondonCulture/1.0 (personal event aggregator)"
	DefaultTimeout   = 15 * time.Second
	DefaultDelay     = time.Second
)

// Client fetches source documents over plain HTTP. A politeness delay is
// applied before every request so listing sites see at most one request per
// delay interval from a run.
type Client struct {
	http      *http.Client
	userAgent string
	delay     time.Duration
}

// NewClient creates a Client with the given User-Agent and per-request
// delay. Empty or zero arguments fall back to the defaults.
func NewClient(userAgent string, delay time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: userAgent,
		delay:     delay,
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}
	return resp, nil
}

// Document fetches url and parses the response body as a queryable HTML
// tree.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}

// Text fetches url and returns the raw response body, for sources that
// embed their data in inline scripts rather than markup.
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body from %s: %w", url, err)
	}
	return string(body), nil
}

// JSON fetches url and decodes the response body into v.
func (c *Client) JSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding JSON from %s: %w", url, err)
	}
	return nil
}
