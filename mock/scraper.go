package mock

import (
	"context"

	"github.com/fwojciec/webextract"
)

var _ webextract.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of webextract.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, rawURL string) (*webextract.Result, error)
}

func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*webextract.Result, error) {
	return s.ScrapeFn(ctx, rawURL)
}
