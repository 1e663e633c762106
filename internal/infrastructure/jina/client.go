// Package jina implements the page-scraping adapter against the Jina Reader
// API, which returns extracted article body text for an arbitrary URL.
package jina

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsingest/internal/config"
	"newsingest/internal/ports"
)

// Client scrapes article bodies through the reader endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.PageScraper = (*Client)(nil)

// NewClient builds a scraper client from configuration.
func NewClient(cfg config.JinaConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

type readerResponse struct {
	Data struct {
		Content string `json:"content"`
	} `json:"data"`
}

// FetchBody returns the extracted body text for a URL, or an empty string
// when the reader cannot (missing key, non-200, network failure). The
// article then proceeds with empty raw content and fails the viability
// check downstream.
func (c *Client) FetchBody(ctx context.Context, articleURL string) (string, error) {
	if c.apiKey == "" {
		c.warn("scrape skipped: api key is not set", "url", articleURL)
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch body: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("reader returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var payload readerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return payload.Data.Content, nil
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
