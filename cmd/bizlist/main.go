package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bizlist"
	"github.com/fwojciec/bizlist/crawl"
	"github.com/fwojciec/bizlist/fs"
	"github.com/fwojciec/bizlist/gocache"
	"github.com/fwojciec/bizlist/goquery"
	bizhttp "github.com/fwojciec/bizlist/http"
	"github.com/fwojciec/bizlist/rod"
	bizslog "github.com/fwojciec/bizlist/slog"
	"github.com/fwojciec/bizlist/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string   `short:"c" help:"Settings file (JSON, or YAML by .yaml/.yml extension)"`
	Input       string   `short:"i" help:"Identifier file, one listing URL or path per line (overrides input_file)"`
	OutputDir   string   `short:"o" name:"output-dir" help:"Output directory (overrides output_directory)"`
	Formats     []string `short:"f" help:"Output formats: json, csv, xlsx (overrides output_formats)"`
	Concurrency int      `short:"n" help:"Concurrent fetch limit (overrides concurrency)"`
	Sitemap     bool     `help:"Discover listing URLs from the site's sitemap instead of the input file"`
	Filter      []string `help:"Regex a sitemap URL must match to be scraped (repeatable)"`
	Browser     bool     `help:"Render pages in headless Chrome"`
	Cache       string   `help:"SQLite page cache path (overrides cache_path)"`
	LogLevel    string   `name:"log-level" help:"DEBUG, INFO, WARN or ERROR (overrides log_level)"`
}

// apply overlays the flags that were set onto cfg.
func (cli *CLI) apply(cfg *Config) {
	if cli.Input != "" {
		cfg.InputFile = cli.Input
	}
	if cli.OutputDir != "" {
		cfg.OutputDirectory = cli.OutputDir
	}
	if len(cli.Formats) > 0 {
		cfg.OutputFormats = cli.Formats
	}
	if cli.Concurrency > 0 {
		cfg.Concurrency = cli.Concurrency
	}
	if cli.Browser {
		cfg.Browser = true
	}
	if cli.Cache != "" {
		cfg.CachePath = cli.Cache
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bizlist"),
		kong.Description("Extract business-for-sale listings into JSON, CSV and XLSX files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := newLogger(stderr, level)
	schema, _ := cfg.Schema()
	formats, _ := cfg.Formats()

	filter, err := bizlist.NewURLFilter(cli.Filter, nil)
	if err != nil {
		return bizlist.Errorf(bizlist.ECONFIG, "%s", bizlist.ErrorMessage(err))
	}

	deps := &Dependencies{
		Ctx:      ctx,
		Logger:   logger,
		Exporter: bizslog.NewLoggingExporter(fs.NewExporter(cfg.OutputDirectory), logger),
	}

	cmd := &ScrapeCmd{
		Target:      cfg.InputFile,
		Concurrency: cfg.Concurrency,
		Basename:    cfg.OutputBasename,
		Formats:     formats,
	}
	// One client, bounded by request_timeout, serves pages, robots.txt and
	// sitemaps.
	client := &http.Client{Timeout: cfg.Timeout()}

	if cli.Sitemap {
		cmd.Target = cfg.BaseURL
		sitemaps := bizslog.NewLoggingSitemapService(bizhttp.NewSitemapService(client), logger)
		deps.Source = &SitemapSource{Sitemaps: sitemaps, Filter: filter}
	} else {
		deps.Source = fs.IdentifierFile{}
	}

	logger.Info("settings",
		"source", cmd.Target,
		"output_dir", cfg.OutputDirectory,
		"formats", cfg.OutputFormats,
		"browser", cfg.Browser,
	)

	fetcher, err := newFetcher(cfg, client)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return err
	}
	defer fetcher.Close()

	scraper := &crawl.Scraper{
		Fetcher:     bizslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   bizslog.NewLoggingExtractor(goquery.NewExtractor(schema), logger),
		BaseURL:     cfg.BaseURL,
		Delay:       cfg.Delay(),
		RetryDelays: crawl.RetryDelays(cfg.MaxRetries),
		OnRetry: func(url string, attempt int, err error) {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
		},
	}
	if cfg.RequestsPerSecond > 0 {
		scraper.RateLimiter = crawl.NewDomainLimiter(cfg.RequestsPerSecond)
	}
	if cfg.RespectRobots {
		scraper.Robots = bizhttp.NewRobotsChecker(client, cfg.UserAgent)
	}
	cache, closeCache, err := NewPageCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	if cache != nil {
		scraper.Cache = cache
	}
	deps.Scraper = scraper

	return cmd.Run(deps)
}

// NewPageCache opens the page cache named by cache_path: an sqlite store
// with an in-memory layer in front of it. It returns a nil cache when
// caching is disabled. The returned close function is always non-nil.
func NewPageCache(cfg *Config) (bizlist.PageCache, func() error, error) {
	if cfg.CachePath == "" {
		return nil, func() error { return nil }, nil
	}

	db := sqlite.NewDB(cfg.CachePath)
	if err := db.Open(); err != nil {
		return nil, nil, bizlist.Errorf(bizlist.ECONFIG, "open page cache: %v", err)
	}
	return gocache.NewPageCache(cfg.TTL(), sqlite.NewPageCache(db, cfg.TTL())), db.Close, nil
}

// newFetcher returns the browser fetcher when rendering is enabled and the
// plain HTTP fetcher on client otherwise.
func newFetcher(cfg *Config, client *http.Client) (bizlist.Fetcher, error) {
	if cfg.Browser {
		opts := []rod.Option{
			rod.WithFetchTimeout(cfg.Timeout()),
			rod.WithUserAgent(cfg.UserAgent),
		}
		for k, v := range cfg.Headers {
			opts = append(opts, rod.WithHeader(k, v))
		}
		return rod.NewFetcher(opts...)
	}

	opts := []bizhttp.Option{
		bizhttp.WithClient(client),
		bizhttp.WithTimeout(cfg.Timeout()),
		bizhttp.WithUserAgent(cfg.UserAgent),
	}
	for k, v := range cfg.Headers {
		opts = append(opts, bizhttp.WithHeader(k, v))
	}
	return bizhttp.NewFetcher(opts...), nil
}
