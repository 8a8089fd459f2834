package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/bizlist"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	ctx, logger := deps.Ctx, deps.Logger

	ids, err := deps.Source.Discover(ctx, c.Target)
	if err != nil {
		logger.Error("reading identifiers", "source", c.Target, "err", err)
		return err
	}
	if len(ids) == 0 {
		logger.Info("no identifiers to scrape", "source", c.Target)
		return nil
	}

	logger.Info("starting scrape", "identifiers", len(ids), "concurrency", c.Concurrency)

	progress := func(p bizlist.ScrapeProgress) {
		switch {
		case p.Error != nil:
			logger.Warn("listing failed", "id", p.Identifier, "completed", p.Completed, "total", p.Total, "err", p.Error)
		case p.Incomplete != nil:
			logger.Warn("listing incomplete", "id", p.Identifier, "completed", p.Completed, "total", p.Total, "err", p.Incomplete)
		default:
			logger.Info("scraped listing", "id", p.Identifier, "completed", p.Completed, "total", p.Total)
		}
	}

	res := deps.Scraper.Run(ctx, ids, c.Concurrency, progress)
	logger.Info("finished scraping",
		"attempted", res.Attempted,
		"succeeded", res.Succeeded(),
		"failed", res.Failed(),
	)

	if res.Succeeded() == 0 {
		logger.Error("no listings extracted", "attempted", res.Attempted)
		return ctx.Err()
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	basename := fmt.Sprintf("%s_%s", c.Basename, now().UTC().Format("20060102_150405"))

	// Records already in memory are exported even when the run was interrupted.
	if _, err := deps.Exporter.Export(context.WithoutCancel(ctx), res.Records, basename, c.Formats); err != nil {
		return err
	}

	logger.Info("scrape complete", "basename", basename)
	return ctx.Err()
}
