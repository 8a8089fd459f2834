package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizlist"
	"github.com/fwojciec/bizlist/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Logger *slog.Logger

	Source   bizlist.URLSource
	Scraper  *crawl.Scraper
	Exporter bizlist.Exporter

	// Now stamps export basenames. Defaults to time.Now.
	Now func() time.Time
}

// ScrapeCmd discovers identifiers, scrapes them and exports the records.
type ScrapeCmd struct {
	// Target is the identifier file path, or the site URL in sitemap mode.
	Target      string
	Concurrency int
	Basename    string
	Formats     []bizlist.Format
}
