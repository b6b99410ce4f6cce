// Package livedata provides the optional live-data capability: real-time
// access to the vendor's website through a remote scraping service that
// speaks the Model Context Protocol.
//
// Absence of the capability is a normal runtime condition, not an error.
// The resolution chain checks for it explicitly and falls through to the
// next tier, so nothing here may panic or block past its timeout.
package livedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrCapabilityAbsent signals that the live-data capability is not
// configured or not reachable. Callers treat it as a branch, not a fault.
var ErrCapabilityAbsent = errors.New("live data capability absent")

// DefaultTimeout bounds a single live-data call. Voice latency budgets
// forbid anything slower; a timed-out call falls through to the next tier.
const DefaultTimeout = 15 * time.Second

// SearchResult is one hit from a live website search.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchOptions narrow a live search.
type SearchOptions struct {
	Category string
	Limit    int
}

// FetchHints steer content extraction on a live page fetch.
type FetchHints struct {
	IncludeTags []string
	ExcludeTags []string
	WaitMillis  int
}

// Capability is the live-data interface consumed by the resolution chain.
// Implementations must honor context deadlines and return
// ErrCapabilityAbsent when the underlying service is gone.
type Capability interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
	Fetch(ctx context.Context, url string, hints FetchHints) (string, error)
}

// Config configures the MCP-backed live-data client.
type Config struct {
	// Endpoint is the streamable-HTTP URL of the scraping MCP server.
	// Empty means the capability is absent.
	Endpoint string

	// Site restricts searches to the vendor's domain, e.g. "example.com".
	Site string

	// Timeout bounds each call. Zero selects DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport client, mainly for tests.
	HTTPClient *http.Client
}

// Client implements Capability over an MCP session to a Firecrawl-style
// scraping server exposing firecrawl_search and firecrawl_scrape tools.
type Client struct {
	session *mcp.ClientSession
	site    string
	timeout time.Duration
	logger  *slog.Logger
}

// Connect establishes the MCP session. It returns ErrCapabilityAbsent when
// no endpoint is configured or the server cannot be reached; the caller
// starts without the live tier rather than failing.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		return nil, ErrCapabilityAbsent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "storevoice", Version: "1.0.0"}, nil)
	transport := &mcp.StreamableClientTransport{
		Endpoint:   cfg.Endpoint,
		HTTPClient: cfg.HTTPClient,
	}

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		logger.Warn("live data capability unreachable, starting without it", "endpoint", cfg.Endpoint, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCapabilityAbsent, err)
	}

	return &Client{
		session: session,
		site:    cfg.Site,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Close terminates the MCP session.
func (c *Client) Close() error {
	return c.session.Close()
}

// Search runs a site-scoped search on the scraping service.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullQuery := query
	if opts.Category != "" {
		fullQuery += " " + opts.Category
	}
	if c.site != "" {
		fullQuery += " site:" + c.site
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name: "firecrawl_search",
		Arguments: map[string]any{
			"query":  fullQuery,
			"limit":  limit,
			"format": "markdown",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("live search failed: %w", err)
	}
	if result.IsError {
		return nil, fmt.Errorf("live search failed: %s", textContent(result))
	}

	return parseSearchPayload(textContent(result)), nil
}

// Fetch scrapes a single page and returns its main content as markdown.
func (c *Client) Fetch(ctx context.Context, url string, hints FetchHints) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := map[string]any{
		"url":             url,
		"formats":         []string{"markdown"},
		"onlyMainContent": true,
	}
	if len(hints.IncludeTags) > 0 {
		args["includeTags"] = hints.IncludeTags
	}
	if len(hints.ExcludeTags) > 0 {
		args["excludeTags"] = hints.ExcludeTags
	}
	if hints.WaitMillis > 0 {
		args["waitFor"] = hints.WaitMillis
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "firecrawl_scrape",
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("live fetch failed: %w", err)
	}
	if result.IsError {
		return "", fmt.Errorf("live fetch failed: %s", textContent(result))
	}

	content := textContent(result)
	if strings.TrimSpace(content) == "" {
		return "", errors.New("live fetch returned empty content")
	}
	return content, nil
}

// textContent concatenates the text parts of a tool result.
func textContent(result *mcp.CallToolResult) string {
	var b strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

// parseSearchPayload decodes a search tool response. The service returns a
// JSON array of hits when structured output is available; otherwise the
// whole text is treated as one content blob so the parser downstream can
// still mine it.
func parseSearchPayload(payload string) []SearchResult {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	var results []SearchResult
	if err := json.Unmarshal([]byte(payload), &results); err == nil {
		return nonEmpty(results)
	}

	// Some servers wrap the hits in an envelope.
	var envelope struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err == nil && len(envelope.Results) > 0 {
		return nonEmpty(envelope.Results)
	}

	return []SearchResult{{Content: payload}}
}

func nonEmpty(results []SearchResult) []SearchResult {
	filtered := results[:0]
	for _, r := range results {
		if r.Title != "" || r.Content != "" {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
