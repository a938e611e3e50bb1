// Package pipeline drives one generator run: list the channel, enrich and
// render each video, then write the catalogue, index and sitemap.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ytsite/internal/config"
	xlog "ytsite/internal/log"
	"ytsite/internal/site"
	"ytsite/internal/storage"
	"ytsite/internal/youtube"
)

// Options is the run configuration.
type Options struct {
	ChannelID string
	Site      site.Options
	Minify    bool
}

// OptionsFromConfig derives run options from the application config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := site.ParseEscapeMode(cfg.Escape)
	if err != nil {
		return Options{}, err
	}
	return Options{
		ChannelID: cfg.ChannelID,
		Site: site.Options{
			BaseURL:  cfg.BaseURL,
			PagesDir: cfg.PagesDir,
			Escape:   mode,
		},
		Minify: cfg.Minify,
	}, nil
}

// Generator regenerates the whole site from a Source.
type Generator struct {
	opts     Options
	src      youtube.Source
	out      *storage.Output
	minifier *site.Minifier
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a Generator.
func New(opts Options, src youtube.Source, out *storage.Output, logger zerolog.Logger) *Generator {
	g := &Generator{
		opts:   opts,
		src:    src,
		out:    out,
		logger: logger.With().Str("component", "pipeline").Logger(),
		now:    time.Now,
	}
	if opts.Minify {
		g.minifier = site.NewMinifier()
	}
	return g
}

// Run performs one full regeneration. Videos whose details cannot be fetched
// or whose page cannot be written are skipped and recorded in the report.
// Listing failures and failures to write the catalogue, index or sitemap
// abort the run. The report is returned in both cases.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	runID := xlog.RunIDFromContext(ctx)
	if runID == "" {
		runID = xlog.NewRunID()
		ctx = xlog.ContextWithRunID(ctx, runID)
	}
	logger := xlog.WithContext(ctx, g.logger)

	report := &Report{
		RunID:     runID,
		ChannelID: g.opts.ChannelID,
		State:     StateListing,
		StartedAt: g.now(),
	}

	logger.Info().Str("channel_id", g.opts.ChannelID).Msg("listing channel videos")
	ids, err := youtube.ListVideoIDs(ctx, g.src, g.opts.ChannelID)
	if err != nil {
		return g.fail(report, fmt.Errorf("list channel %s: %w", g.opts.ChannelID, err))
	}
	report.Listed = len(ids)
	logger.Info().Int("videos", len(ids)).Msg("channel listed")

	report.State = StateEnriching
	if err := g.out.EnsurePagesDir(); err != nil {
		return g.fail(report, err)
	}

	report.Videos = make([]site.Video, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return g.fail(report, err)
		}

		v, err := youtube.FetchVideo(ctx, g.src, id)
		if err != nil && !youtube.IsItemLocal(err) {
			return g.fail(report, err)
		}
		if err != nil {
			report.Items = append(report.Items, ItemResult{ID: id, Status: StatusSkipped, Reason: skipReason(err), Err: err})
			logger.Warn().Err(err).Str("video_id", id).Msg("skipping video")
			continue
		}

		if err := g.writePage(v); err != nil {
			report.Items = append(report.Items, ItemResult{ID: id, Status: StatusSkipped, Reason: reasonWrite, Err: err})
			logger.Warn().Err(err).Str("video_id", id).Msg("skipping video: page not written")
			continue
		}
		report.Videos = append(report.Videos, v)
		report.Items = append(report.Items, ItemResult{ID: id, Status: StatusRendered})
		logger.Debug().Str("video_id", id).Str("path", g.out.PagePath(id)).Msg("created page")
	}

	report.State = StatePersisting
	if err := g.persist(report.Videos); err != nil {
		return g.fail(report, err)
	}

	report.State = StateDone
	report.FinishedAt = g.now()
	return report, nil
}

func (g *Generator) writePage(v site.Video) error {
	doc, err := site.RenderPage(v, site.BuildSchema(v), g.opts.Site)
	if err != nil {
		return err
	}
	if doc, err = g.minifier.HTML(doc); err != nil {
		return fmt.Errorf("minify page %s: %w", v.ID, err)
	}
	return g.out.WritePage(v.ID, doc)
}

// persist writes the aggregate artifacts in a fixed order.
func (g *Generator) persist(videos []site.Video) error {
	if err := g.out.WriteCatalog(videos); err != nil {
		return err
	}

	index, err := g.minifier.HTML(site.RenderIndex(videos, g.opts.Site))
	if err != nil {
		return fmt.Errorf("minify index: %w", err)
	}
	if err := g.out.WriteIndex(index); err != nil {
		return err
	}

	sitemap, err := site.RenderSitemap(videos, g.opts.Site.BaseURL)
	if err != nil {
		return err
	}
	if sitemap, err = g.minifier.XML(sitemap); err != nil {
		return fmt.Errorf("minify sitemap: %w", err)
	}
	return g.out.WriteSitemap(sitemap)
}

func (g *Generator) fail(r *Report, err error) (*Report, error) {
	r.FailedIn = r.State
	r.State = StateFailed
	r.FinishedAt = g.now()
	return r, err
}

// Skip reasons recorded in ItemResult.Reason.
const (
	reasonNotFound = "not found"
	reasonUpstream = "upstream error"
	reasonWrite    = "write error"
)

func skipReason(err error) string {
	if errors.Is(err, youtube.ErrNotFound) {
		return reasonNotFound
	}
	return reasonUpstream
}
