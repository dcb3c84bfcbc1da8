package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webextract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Scraper webextract.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel  string        `default:"info" enum:"debug,info,warn,error" env:"WEBEXTRACT_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFile   string        `type:"path" env:"WEBEXTRACT_LOG_FILE" help:"Write logs to a rotated file instead of stderr"`
	Timeout   time.Duration `short:"t" default:"10s" env:"WEBEXTRACT_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent string        `env:"WEBEXTRACT_USER_AGENT" help:"Override the User-Agent header sent when fetching"`

	Serve   ServeCmd   `cmd:"" help:"Serve the extraction API over HTTP"`
	Extract ExtractCmd `cmd:"" help:"Extract fields from a single page and print them as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"0.0.0.0:8000" env:"WEBEXTRACT_ADDR" help:"Address to listen on"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL     string `arg:"" help:"Page URL"`
	Minimal bool   `short:"m" help:"Print only body and links"`
}

// errorMessage returns the user-facing text for err.
func errorMessage(err error) string {
	if webextract.ErrorCode(err) == webextract.EINTERNAL {
		return err.Error()
	}
	return webextract.ErrorMessage(err)
}
