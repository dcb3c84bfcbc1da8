package webextract

import "context"

// Scraper runs the full pipeline for a single URL: validate, fetch, parse
// and extract. It stops at the first failure and never returns a partial
// result.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (*Result, error)
}
