// Package scrape runs the single-page extraction pipeline: validate the URL,
// fetch the page, parse it, extract the structured fields.
package scrape

import (
	"context"
	"fmt"

	"github.com/fwojciec/webextract"
)

// Ensure Scraper implements webextract.Scraper at compile time.
var _ webextract.Scraper = (*Scraper)(nil)

// Scraper wires a Fetcher and a Parser into the extraction pipeline.
type Scraper struct {
	Fetcher webextract.Fetcher
	Parser  webextract.Parser
}

// Scrape validates rawURL, fetches and parses the page, and extracts its
// fields. Stages run strictly in order and the first failure is returned
// unchanged, so an invalid URL never reaches the network and a failed fetch
// never reaches the parser.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*webextract.Result, error) {
	if _, err := webextract.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := s.Parser.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	return webextract.Extract(doc)
}
