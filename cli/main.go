package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ytsite/internal/config"
	"ytsite/internal/httpclient"
	xlog "ytsite/internal/log"
	"ytsite/internal/pipeline"
	"ytsite/internal/server"
	"ytsite/internal/storage"
	"ytsite/internal/youtube"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return cmdGenerate(nil)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "generate":
		return cmdGenerate(rest)
	case "serve":
		return cmdServe(rest)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytsite - static site generator for a YouTube channel

Usage:
  ytsite [generate]        Regenerate pages, videos.json, index.html and sitemap.xml
  ytsite serve [flags]     Preview the generated site over HTTP
  ytsite help              Show this help message

Configuration is read from ytsite.yaml (or $YTSITE_CONFIG) and YTSITE_* environment
variables, e.g. YTSITE_API_KEY, YTSITE_CHANNEL_ID, YTSITE_SITE_DIR, YTSITE_BASE_URL.
`)
}

func loadConfig() (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return nil, false
	}
	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, true
}

func cmdGenerate(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Error: generate takes no arguments\n")
		return 2
	}

	cfg, ok := loadConfig()
	if !ok {
		return 1
	}
	if err := cfg.ValidateAPI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger := xlog.WithComponent("cli")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runID := xlog.NewRunID()
	ctx = xlog.ContextWithRunID(ctx, runID)

	hc := httpclient.DefaultConfig()
	hc.APIKey = cfg.APIKey
	hc.Timeout = cfg.RequestTimeout
	src, err := youtube.NewAPISource(ctx, youtube.APIOptions{
		HTTPClient: httpclient.New(hc),
		Endpoint:   cfg.APIEndpoint,
		PageSize:   cfg.PageSize,
	})
	if err != nil {
		logger.Error().Err(err).Msg("create api source")
		return 1
	}

	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	gen := pipeline.New(opts, src, storage.NewOutput(cfg.SiteDir, cfg.PagesDir), xlog.Base())
	report, err := gen.Run(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Str("run_id", runID).
			Str("stage", report.FailedIn.String()).
			Int("rendered", report.Rendered()).
			Msg("generation failed")
		return 1
	}

	logger.Info().
		Str("run_id", runID).
		Int("listed", report.Listed).
		Int("rendered", report.Rendered()).
		Int("skipped", report.Skipped()).
		Dur("elapsed", report.Elapsed()).
		Str("site_dir", cfg.SiteDir).
		Msg("all files generated")
	return 0
}

func cmdServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "Listen address (default: serve_addr from config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytsite serve [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, ok := loadConfig()
	if !ok {
		return 1
	}
	if *addr == "" {
		*addr = cfg.ServeAddr
	}
	logger := xlog.WithComponent("server")

	if videos, err := storage.ReadCatalog(filepath.Join(cfg.SiteDir, storage.CatalogFile)); err != nil {
		logger.Warn().Err(err).Msg("no catalogue found; run ytsite generate first")
	} else {
		logger.Info().Int("videos", len(videos)).Msg("catalogue loaded")
	}

	srv := server.NewHTTPServer(*addr, server.New(cfg.SiteDir, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Str("site_dir", cfg.SiteDir).Msg("serving site")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
		return 1
	}
	return 0
}
