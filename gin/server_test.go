package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/webextract"
	webgin "github.com/fwojciec/webextract/gin"
	"github.com/fwojciec/webextract/goquery"
	webhttp "github.com/fwojciec/webextract/http"
	"github.com/fwojciec/webextract/mock"
	"github.com/fwojciec/webextract/scrape"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(scraper webextract.Scraper) *webgin.Server {
	return webgin.NewServer(scraper, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// pipeline builds a Server around the real scrape pipeline and parser with
// a mock fetcher.
func pipeline(fetcher *mock.Fetcher) *webgin.Server {
	return newServer(&scrape.Scraper{Fetcher: fetcher, Parser: goquery.NewParser()})
}

func get(s http.Handler, path, rawURL string) *httptest.ResponseRecorder {
	target := path
	if rawURL != "" {
		target += "?url=" + url.QueryEscape(rawURL)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

const samplePage = `<html><head><title>T</title><meta name="description" content="D"></head>
<body><h1>Head</h1><p>Hello</p><a href="/x">L</a><img src="/i.png"><div class="card">C</div></body></html>`

func TestServer_Summary(t *testing.T) {
	t.Parallel()

	t.Run("returns body and links only", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><head><title>T</title></head><body><p>Hello</p><a href="/x">L</a></body></html>`, nil
			},
		})

		rec := get(s, webgin.SummaryPath, "https://example.com")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"body": "HelloL", "links": ["/x"]}`, rec.Body.String())
	})

	t.Run("returns empty links array", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body>text</body></html>`, nil
			},
		})

		rec := get(s, webgin.SummaryPath, "https://example.com")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"body": "text", "links": []}`, rec.Body.String())
	})
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns the full record", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return samplePage, nil
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"title": "T",
			"meta_description": "D",
			"body": "HeadHelloLC",
			"links": ["/x"],
			"images": ["/i.png"],
			"headings": {"h1": ["Head"], "h2": [], "h3": [], "h4": [], "h5": [], "h6": []},
			"cards": ["C"]
		}`, rec.Body.String())
	})

	t.Run("returns 422 when url parameter is missing", func(t *testing.T) {
		t.Parallel()

		s := newServer(&mock.Scraper{})

		rec := get(s, webgin.ExtractPath, "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "url query parameter required", detail(t, rec))
	})

	t.Run("returns 400 for invalid URL without fetching", func(t *testing.T) {
		t.Parallel()

		fetchCalled := false
		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				fetchCalled = true
				return "", nil
			},
		})

		rec := get(s, webgin.ExtractPath, "not-a-url")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid URL format", detail(t, rec))
		assert.False(t, fetchCalled)
	})

	t.Run("returns 404 when page has no body", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><head></head></html>`, nil
			},
		})

		rec := get(s, webgin.SummaryPath, "https://example.com")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No body tag found in the webpage", detail(t, rec))
	})

	t.Run("propagates remote status when fetch fails", func(t *testing.T) {
		t.Parallel()

		parseCalled := false
		s := newServer(&scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "", &webextract.FetchError{URL: url, StatusCode: http.StatusNotFound}
				},
			},
			Parser: &mock.Parser{
				ParseFn: func(_ string) (webextract.Document, error) {
					parseCalled = true
					return nil, nil
				},
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com/missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Failed to fetch the webpage", detail(t, rec))
		assert.False(t, parseCalled)
	})

	t.Run("propagates remote server errors", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", &webextract.FetchError{URL: url, StatusCode: http.StatusServiceUnavailable}
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "Failed to fetch the webpage", detail(t, rec))
	})

	t.Run("returns 500 with message for transport failures", func(t *testing.T) {
		t.Parallel()

		s := pipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", &webextract.FetchError{URL: url, Err: errors.New("connection refused")}
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "fetch https://example.com: connection refused", detail(t, rec))
	})

	t.Run("returns 500 with message for internal errors", func(t *testing.T) {
		t.Parallel()

		s := newServer(&mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*webextract.Result, error) {
				return nil, webextract.Errorf(webextract.EINTERNAL, "failed to parse HTML: boom")
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "failed to parse HTML: boom", detail(t, rec))
	})

	t.Run("returns 500 with detail when the handler panics", func(t *testing.T) {
		t.Parallel()

		s := newServer(&mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*webextract.Result, error) {
				panic("boom")
			},
		})

		rec := get(s, webgin.ExtractPath, "https://example.com")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "boom", detail(t, rec))
	})

	t.Run("fetches remote pages end to end", func(t *testing.T) {
		t.Parallel()

		remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gone" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(samplePage))
		}))
		defer remote.Close()

		s := newServer(&scrape.Scraper{
			Fetcher: webhttp.NewFetcher(),
			Parser:  goquery.NewParser(),
		})

		rec := get(s, webgin.SummaryPath, remote.URL+"/page")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"body": "HeadHelloLC", "links": ["/x"]}`, rec.Body.String())

		rec = get(s, webgin.SummaryPath, remote.URL+"/gone")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Failed to fetch the webpage", detail(t, rec))
	})
}

func TestServer_RequestID(t *testing.T) {
	t.Parallel()

	s := newServer(&mock.Scraper{})

	t.Run("assigns a request ID", func(t *testing.T) {
		t.Parallel()

		rec := get(s, webgin.HealthPath, "")

		assert.NotEmpty(t, rec.Header().Get(webgin.RequestIDHeader))
	})

	t.Run("echoes the caller's request ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, webgin.HealthPath, nil)
		req.Header.Set(webgin.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(webgin.RequestIDHeader))
	})
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	rec := get(newServer(&mock.Scraper{}), webgin.HealthPath, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is canceled", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		s := newServer(&mock.Scraper{})
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Serve(ctx, ln) }()

		resp, err := http.Get("http://" + ln.Addr().String() + webgin.HealthPath)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(webgin.ShutdownTimeout):
			t.Fatal("server did not shut down")
		}
	})
}
