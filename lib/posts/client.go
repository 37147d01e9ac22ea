// Package posts fetches blog posts from the placeholder API.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Endpoint is the only source posts are read from.
const Endpoint = "https://jsonplaceholder.typicode.com/posts"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %d %s", e.Code, e.Text)
}

// Client performs the single GET against Endpoint.
type Client struct {
	HTTP *http.Client
	URL  string
}

// NewClient returns a client for Endpoint. No timeout is set: a request
// runs until it completes or its context is cancelled.
func NewClient() *Client {
	return &Client{HTTP: &http.Client{}, URL: Endpoint}
}

// Fetch issues one GET and parses the whole response body as a JSON array.
//
// Transport failures come back as the cause's own error, without the
// `Get "<url>":` prefix net/http adds.
func (c *Client) Fetch(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, uerr.Err
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Text: statusText(resp)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// Unmarshal rejects anything after the array, unlike a streaming Decode.
	var out []Post
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// statusText returns the reason phrase the server sent, which may differ
// from http.StatusText.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text, ok := strings.CutPrefix(resp.Status, code+" "); ok {
		return text
	}
	if resp.Status != "" && resp.Status != code {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}
