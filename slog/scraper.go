package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webextract"
)

// Ensure LoggingScraper implements webextract.Scraper.
var _ webextract.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with a summary log line per page.
type LoggingScraper struct {
	next   webextract.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next webextract.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, rawURL string) (result *webextract.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"links", len(result.Links),
				"images", len(result.Images),
				"cards", len(result.Cards),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", webextract.ErrorCode(err), "err", err)
		}
		s.logger.InfoContext(ctx, "scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, rawURL)
}
