package news

import (
	"context"
	"log"

	"StockNewsAlert/internal/model"
)

// MaxArticles caps how many articles a run ever carries.
const MaxArticles = 3

type Client interface {
	Search(ctx context.Context, issuer string) ([]model.Article, error)
	Name() string
}

// Fetcher wraps a Client, keeping the first MaxArticles in upstream order.
type Fetcher struct {
	Client Client
}

func NewFetcher(client Client) *Fetcher {
	return &Fetcher{Client: client}
}

// Fetch never returns an error: failures are logged and reported as FetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, issuer string) *model.NewsResult {
	res := &model.NewsResult{Source: f.Client.Name()}
	articles, err := f.Client.Search(ctx, issuer)
	if err != nil {
		log.Printf("[ERROR] fetch news for %q from %s: %v", issuer, res.Source, err)
		res.Status = model.FetchFailed
		res.Err = err
		return res
	}
	if len(articles) == 0 {
		res.Status = model.FetchEmpty
		return res
	}
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}
	res.Status = model.FetchOK
	res.Articles = articles
	return res
}
