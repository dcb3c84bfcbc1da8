// Package gin serves webextract over HTTP using the gin web framework.
package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/webextract"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "0.0.0.0:8000"

// ShutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const ShutdownTimeout = 5 * time.Second

// Routes served by Server.
const (
	SummaryPath = "/extract-body-and-links/"
	ExtractPath = "/extract/"
	HealthPath  = "/health"
)

// Server is the HTTP front end of the extraction pipeline.
type Server struct {
	// Addr is the TCP address to listen on. Defaults to DefaultAddr.
	Addr string

	router  *gin.Engine
	server  *http.Server
	scraper webextract.Scraper
}

// NewServer creates a Server that answers extraction requests with scraper.
func NewServer(scraper webextract.Scraper, logger *slog.Logger) *Server {
	s := &Server{
		Addr:    DefaultAddr,
		router:  gin.New(),
		scraper: scraper,
	}

	s.router.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		respondError(c, http.StatusInternalServerError, fmt.Sprint(rec))
	}), requestID(), requestLogger(logger))
	s.router.GET(HealthPath, s.handleHealth)
	s.router.GET(SummaryPath, s.handleSummary)
	s.router.GET(ExtractPath, s.handleExtract)

	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ServeHTTP dispatches a single request. Used directly by tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe listens on s.Addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully, waiting up to ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSummary serves the minimal response shape: body and links.
func (s *Server) handleSummary(c *gin.Context) {
	result, ok := s.scrape(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Summary())
}

// handleExtract serves the full response shape.
func (s *Server) handleExtract(c *gin.Context) {
	result, ok := s.scrape(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// scrape runs the pipeline for the url query parameter. On failure it writes
// the error response and returns false.
func (s *Server) scrape(c *gin.Context) (*webextract.Result, bool) {
	rawURL, ok := c.GetQuery("url")
	if !ok {
		respondError(c, http.StatusUnprocessableEntity, "url query parameter required")
		return nil, false
	}

	result, err := s.scraper.Scrape(c.Request.Context(), rawURL)
	if err != nil {
		status, detail := errorResponse(err)
		respondError(c, status, detail)
		return nil, false
	}
	return result, true
}
