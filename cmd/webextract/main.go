package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/goquery"
	webhttp "github.com/fwojciec/webextract/http"
	"github.com/fwojciec/webextract/scrape"
	webslog "github.com/fwojciec/webextract/slog"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the HTTP fetcher. Set before calling Run().
	Fetcher webextract.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webextract"),
		kong.Description("Extract title, text, links, images, headings and cards from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webextract --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(stderr, cli.LogLevel, cli.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()
	deps.Logger = logger

	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []webhttp.Option{webhttp.WithTimeout(cli.Timeout)}
		if cli.UserAgent != "" {
			opts = append(opts, webhttp.WithUserAgent(cli.UserAgent))
		}
		fetcher = webhttp.NewFetcher(opts...)
	}
	fetcher = webslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.Scraper = webslog.NewLoggingScraper(&scrape.Scraper{
		Fetcher: fetcher,
		Parser:  goquery.NewParser(),
	}, logger)

	return kongCtx.Run(deps)
}
