// Package newsapi implements the headline listing adapter against the
// NewsAPI top-headlines endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsingest/internal/config"
	"newsingest/internal/domain"
	"newsingest/internal/ports"
)

const defaultPageSize = 50

// Client fetches top headlines per category.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     *http.Client
}

var _ ports.HeadlineSource = (*Client)(nil)

// NewClient builds a reusable headline client from configuration.
func NewClient(cfg config.NewsAPIConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		http:     &http.Client{Timeout: 20 * time.Second},
	}
}

type listResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		Content     string    `json:"content"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// ListLatest requests the latest headlines for a category and country.
func (c *Client) ListLatest(ctx context.Context, category, country string) ([]domain.Headline, error) {
	endpoint, err := url.Parse(c.baseURL + "/top-headlines")
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", c.baseURL, err)
	}

	query := endpoint.Query()
	query.Set("category", category)
	query.Set("country", country)
	query.Set("language", "en")
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", payload.Message)
	}

	headlines := make([]domain.Headline, 0, len(payload.Articles))
	for _, art := range payload.Articles {
		headlines = append(headlines, domain.Headline{
			Title:       art.Title,
			Description: art.Description,
			URL:         art.URL,
			Content:     art.Content,
			PublishedAt: art.PublishedAt,
		})
	}

	return headlines, nil
}
