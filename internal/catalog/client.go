package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pders01/reel/internal/config"
)

const (
	// FallbackAPIMessage is shown when the API reports a failure without text.
	FallbackAPIMessage = "Failed to fetch movies"
	// GenericFetchMessage is shown for transport and decoding failures.
	GenericFetchMessage = "Error fetching movies. Please try again later."
)

// ErrFetchFailed marks a request the server answered with a non-2xx status.
var ErrFetchFailed = errors.New("failed to fetch movies")

// APIError is a failure the API reported inside an otherwise successful
// response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "catalog: " + FallbackAPIMessage
	}
	return "catalog: " + e.Message
}

// UserMessage maps an error from Fetch to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return FallbackAPIMessage
		}
		return apiErr.Message
	}
	return GenericFetchMessage
}

type listResponse struct {
	Results  []Movie `json:"results"`
	Response string  `json:"Response"`
	Error    string  `json:"Error"`
}

type Client struct {
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
}

// NewClient builds a client from the catalog section of cfg. A zero
// HTTPTimeout leaves requests bounded only by the caller's context.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		token:     cfg.Catalog.Token,
		userAgent: cfg.Catalog.UserAgent,
		client: &http.Client{
			Timeout: cfg.Catalog.HTTPTimeout,
		},
	}
}

// Endpoint returns the search URL for a non-empty query and the popularity
// listing otherwise.
func (c *Client) Endpoint(query string) string {
	if query == "" {
		return c.baseURL + "/discover/movie?sort_by=popularity.desc"
	}
	return c.baseURL + "/search/movie?query=" + escapeQuery(query)
}

// escapeQuery percent-encodes like a browser's encodeURIComponent, which
// writes spaces as %20 rather than +.
func escapeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

// Fetch runs one listing request. The returned slice is never nil on
// success.
func (c *Client) Fetch(ctx context.Context, query string) ([]Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if body.Response == "False" {
		return nil, &APIError{Message: body.Error}
	}

	if body.Results == nil {
		return []Movie{}, nil
	}
	return body.Results, nil
}
