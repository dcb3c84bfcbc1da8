// Package http provides an HTTP-based implementation of webextract.Fetcher.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/webextract"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the fetcher as a desktop Chrome browser.
// Some sites serve reduced markup, or refuse, for unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements webextract.Fetcher at compile time.
var _ webextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient uses a copy of the given client for requests. The copy's
// Timeout is replaced by the configured fetch timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		cp := *f.client
		client = &cp
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-2xx responses and transport failures are returned as
// *webextract.FetchError. The body is decoded from the charset declared in
// the Content-Type header; without one it is assumed to be UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &webextract.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &webextract.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &webextract.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if enc := declaredEncoding(resp.Header.Get("Content-Type")); enc != nil {
		body = enc.NewDecoder().Reader(body)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", &webextract.FetchError{URL: url, Err: err}
	}

	return string(b), nil
}

// declaredEncoding returns the encoding named by the charset parameter of a
// Content-Type header, or nil if none is declared or the label is unknown.
func declaredEncoding(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	label, ok := params["charset"]
	if !ok {
		return nil
	}
	enc, _ := charset.Lookup(label)
	return enc
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
