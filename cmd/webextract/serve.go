package main

import (
	webgin "github.com/fwojciec/webextract/gin"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := webgin.NewServer(deps.Scraper, deps.Logger)
	s.Addr = c.Addr

	deps.Logger.Info("listening", "addr", s.Addr)
	return s.ListenAndServe(deps.Ctx)
}
