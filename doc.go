// Package ytsite generates a static site for a YouTube channel's catalogue.
//
// Overview
//
// A run lists every video of one channel through the YouTube Data API v3,
// fetches each video's metadata and writes:
//
//   - {site_dir}/{pages_dir}/{id}.html: one page per video with Open Graph
//     tags and an embedded schema.org VideoObject
//   - {site_dir}/videos.json: the catalogue as a JSON array
//   - {site_dir}/index.html: a list of links to every video page
//   - {site_dir}/sitemap.xml: one <url> per video with its publish timestamp
//
// Videos whose details cannot be fetched are skipped and logged; a failed
// listing or a failed write aborts the run with a non-zero exit status.
//
// Quick Start
//
//	export YTSITE_API_KEY=...
//	export YTSITE_CHANNEL_ID=UCxxxxxxxxxxxxxxxxxxxxxx
//	export YTSITE_BASE_URL=https://example.com/videos/
//	ytsite generate
//	ytsite serve
//
// Configuration
//
// ytsite loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytsite.yaml, ~/.config/ytsite/ytsite.yaml or $YTSITE_CONFIG)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTSITE_API_KEY: YouTube Data API key
//   - YTSITE_CHANNEL_ID: Channel to publish
//   - YTSITE_SITE_DIR: Output root (default ".")
//   - YTSITE_PAGES_DIR: Page directory below the root (default "videos")
//   - YTSITE_BASE_URL: Public URL prefix of video pages, ending in "/"
//   - YTSITE_PAGE_SIZE: search.list page size, 1-50 (default 50)
//   - YTSITE_REQUEST_TIMEOUT: Per-request timeout (default 30s)
//   - YTSITE_ESCAPE: "strict" (default) or "compat"
//   - YTSITE_MINIFY: Minify generated HTML and XML (true/false)
//   - YTSITE_LOG_LEVEL, YTSITE_LOG_FORMAT: Logging
//   - YTSITE_SERVE_ADDR: Preview server address
//
// Error Handling
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytsite.ErrNotFound) {
//		fmt.Println("video not found")
//	}
//
// Extracting wrapped error details:
//
//	var upErr *ytsite.UpstreamError
//	if errors.As(err, &upErr) {
//		fmt.Printf("%s %s failed with status %d\n", upErr.Op, upErr.ID, upErr.StatusCode)
//	}
package ytsite
