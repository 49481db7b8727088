package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"StockNewsAlert/internal/model"
)

type NewsAPIClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(endpoint, apiKey string, httpClient *http.Client) *NewsAPIClient {
	return &NewsAPIClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Search queries articles whose title contains issuer, most popular first.
func (c *NewsAPIClient) Search(ctx context.Context, issuer string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("qInTitle", issuer)
	params.Set("apiKey", c.apiKey)
	params.Set("sortBy", "popularity")

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}

	var raw naResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if raw.Status == "error" || resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d, %s: %s", resp.StatusCode, raw.Code, raw.Message)
	}

	articles := make([]model.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, model.Article{
			Title:       deref(item.Title),
			Description: deref(item.Description),
		})
	}
	return articles, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

type naResponse struct {
	Status       string      `json:"status"`
	Code         string      `json:"code"`
	Message      string      `json:"message"`
	TotalResults int         `json:"totalResults"`
	Articles     []naArticle `json:"articles"`
}

type naArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
