package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestSearch(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 5,
		"articles": []map[string]interface{}{
			{"source": map[string]interface{}{"name": "Reuters"}, "title": "Tesla Inc shares jump", "description": "Deliveries beat estimates.", "url": "https://example.com/1"},
			{"source": map[string]interface{}{"name": "Bloomberg"}, "title": nil, "description": "Untitled piece."},
			{"title": "Tesla Inc recalls vehicles"},
			{"title": "Fourth"},
			{"title": "Fifth"},
		},
	}

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"qInTitle": q.Get("qInTitle"),
			"apiKey":   q.Get("apiKey"),
			"sortBy":   q.Get("sortBy"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewNewsAPIClient(srv.URL, "test-key", srv.Client())
	articles, err := client.Search(context.Background(), "Tesla Inc")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Tesla Inc", gotQuery["qInTitle"])
	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "popularity", gotQuery["sortBy"])

	// The client returns everything; capping happens in Fetcher.
	assert.Equal(t, 5, len(articles))
	assert.Equal(t, "Tesla Inc shares jump", articles[0].Title)
	assert.Equal(t, "Deliveries beat estimates.", articles[0].Description)
	assert.Equal(t, "", articles[1].Title)
	assert.Equal(t, "", articles[2].Description)
}

func TestSearch_NoArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","totalResults":0}`))
	}))
	defer srv.Close()

	articles, err := NewNewsAPIClient(srv.URL, "k", srv.Client()).Search(context.Background(), "Nobody Corp")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	_, err := NewNewsAPIClient(srv.URL, "bad", srv.Client()).Search(context.Background(), "Tesla Inc")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "apiKeyInvalid"))
	assert.Equal(t, true, strings.Contains(err.Error(), "status 401"))
}

func TestSearch_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewNewsAPIClient(srv.URL, "k", srv.Client()).Search(context.Background(), "Tesla Inc")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "status 502"))
}
