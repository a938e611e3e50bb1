package pipeline

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"ytsite/internal/config"
	xlog "ytsite/internal/log"
	"ytsite/internal/site"
	"ytsite/internal/storage"
	"ytsite/internal/youtube"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testChannel = "UCRptoBEWak_neYheT7sXS4w"

func testOptions() Options {
	return Options{
		ChannelID: testChannel,
		Site: site.Options{
			BaseURL:  "https://example.com/videos/",
			PagesDir: "videos",
		},
	}
}

func newGenerator(t *testing.T, src youtube.Source, opts Options) (*Generator, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "site")
	return New(opts, src, storage.NewOutput(root, opts.Site.PagesDir), zerolog.Nop()), root
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return files
}

func TestRunPartialFailure(t *testing.T) {
	src := &youtube.MemorySource{
		ChannelID: testChannel,
		Pages: map[string]youtube.Page{
			"": {Items: []youtube.Item{
				{Kind: youtube.KindVideo, ID: "A"},
				{Kind: youtube.KindVideo, ID: "B"},
			}},
		},
		Details: map[string]youtube.Detail{
			"A": {ID: "A", Title: "Video A", Description: "desc A", PublishedAt: "2024-01-02T03:04:05Z"},
		},
	}
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, 2, report.Listed)
	assert.Equal(t, 1, report.Rendered())
	assert.Equal(t, 1, report.Skipped())
	skipped := report.SkippedItems()
	require.Len(t, skipped, 1)
	assert.Equal(t, "B", skipped[0].ID)
	assert.Equal(t, "not found", skipped[0].Reason)
	assert.ErrorIs(t, skipped[0].Err, youtube.ErrNotFound)

	assert.ElementsMatch(t, []string{"videos/A.html", "videos.json", "index.html", "sitemap.xml"}, listFiles(t, root))

	videos, err := storage.ReadCatalog(filepath.Join(root, storage.CatalogFile))
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "A", videos[0].ID)
}

func TestRunListingFailure(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50, youtube.Detail{ID: "A", Title: "A"})
	src.ListErr = errors.New("dial tcp: connection refused")
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.Error(t, err)

	var ue *youtube.UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, StateFailed, report.State)
	assert.Equal(t, StateListing, report.FailedIn)
	assert.Zero(t, src.DetailCalls)
	assert.Empty(t, listFiles(t, root))
}

func TestRunEmptyChannel(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50)
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, report.State)
	assert.Zero(t, report.Listed)

	catalog, err := os.ReadFile(filepath.Join(root, storage.CatalogFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(catalog)))

	index, err := os.ReadFile(filepath.Join(root, storage.IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<ul>")
	assert.NotContains(t, string(index), "<li>")

	sitemap, err := os.ReadFile(filepath.Join(root, storage.SitemapFile))
	require.NoError(t, err)
	var set site.URLSet
	require.NoError(t, xml.Unmarshal(sitemap, &set))
	assert.Equal(t, "urlset", set.XMLName.Local)
	assert.Empty(t, set.URLs)
}

func TestRunMultiPageCatalogRoundTrip(t *testing.T) {
	details := []youtube.Detail{
		{ID: "v1", Title: "One", Description: `a "quoted" word`, PublishedAt: "2024-03-01T00:00:00Z"},
		{ID: "v2", Title: "Two", Description: "two", PublishedAt: "2024-02-01T00:00:00Z"},
		{ID: "v3", Title: "Three", Description: "three", PublishedAt: "2024-01-01T00:00:00Z"},
	}
	src := youtube.NewMemorySource(testChannel, 2, details...)
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.ListCalls)
	assert.Equal(t, 3, src.DetailCalls)

	got, err := storage.ReadCatalog(filepath.Join(root, storage.CatalogFile))
	require.NoError(t, err)
	if diff := cmp.Diff(report.Videos, got); diff != "" {
		t.Errorf("catalog mismatch (-memory +disk):\n%s", diff)
	}

	sitemap, err := os.ReadFile(filepath.Join(root, storage.SitemapFile))
	require.NoError(t, err)
	var set site.URLSet
	require.NoError(t, xml.Unmarshal(sitemap, &set))
	require.Len(t, set.URLs, 3)
	for i, d := range details {
		assert.Equal(t, "https://example.com/videos/"+d.ID+".html", set.URLs[i].Loc)
		assert.Equal(t, d.PublishedAt, set.URLs[i].LastMod)
	}

	index, err := os.ReadFile(filepath.Join(root, storage.IndexFile))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(index), "<li>"))
	assert.Less(t, strings.Index(string(index), "videos/v1.html"), strings.Index(string(index), "videos/v3.html"))

	page, err := os.ReadFile(filepath.Join(root, "videos", "v1.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `content="a &#39;quoted&#39; word"`)
}

func TestRunUpstreamDetailErrorIsItemLocal(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50,
		youtube.Detail{ID: "A", Title: "A", PublishedAt: "2024"},
		youtube.Detail{ID: "B", Title: "B", PublishedAt: "2024"},
	)
	src.DetailErrs = map[string]error{"A": &youtube.UpstreamError{Op: "detail", ID: "A", StatusCode: 500, Err: errors.New("backend")}}
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.Equal(t, StatusSkipped, report.Items[0].Status)
	assert.Equal(t, "upstream error", report.Items[0].Reason)
	assert.Equal(t, StatusRendered, report.Items[1].Status)
	assert.FileExists(t, filepath.Join(root, "videos", "B.html"))
	assert.NoFileExists(t, filepath.Join(root, "videos", "A.html"))
}

func TestRunPageWriteFailureSkipsVideo(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50,
		youtube.Detail{ID: "bad/id", Title: "Bad", PublishedAt: "2024-01-01T00:00:00Z"},
		youtube.Detail{ID: "A", Title: "Video A", PublishedAt: "2024-01-02T00:00:00Z"},
	)
	g, root := newGenerator(t, src, testOptions())

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, 2, src.DetailCalls)
	assert.Equal(t, 1, report.Rendered())
	assert.Equal(t, 1, report.Skipped())

	require.Len(t, report.Items, 2)
	assert.Equal(t, StatusSkipped, report.Items[0].Status)
	assert.Equal(t, "write error", report.Items[0].Reason)
	var storErr *storage.StorageError
	assert.ErrorAs(t, report.Items[0].Err, &storErr)

	assert.ElementsMatch(t, []string{"videos/A.html", "videos.json", "index.html", "sitemap.xml"}, listFiles(t, root))

	videos, err := storage.ReadCatalog(filepath.Join(root, storage.CatalogFile))
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "A", videos[0].ID)
}

func TestRunPagesDirFailureIsFatal(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50, youtube.Detail{ID: "A", Title: "A", PublishedAt: "2024"})
	root := t.TempDir()
	// A regular file where the site directory should be.
	blocker := filepath.Join(root, "site")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	g := New(testOptions(), src, storage.NewOutput(blocker, "videos"), zerolog.Nop())

	report, err := g.Run(context.Background())
	var storErr *storage.StorageError
	require.ErrorAs(t, err, &storErr)
	assert.Equal(t, StateFailed, report.State)
	assert.Equal(t, StateEnriching, report.FailedIn)
	assert.Zero(t, src.DetailCalls)
}

func TestRunCanceledContext(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50, youtube.Detail{ID: "A", Title: "A"})
	g, _ := newGenerator(t, src, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := g.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, report.State)
}

func TestRunUsesRunIDFromContext(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50)
	g, _ := newGenerator(t, src, testOptions())

	ctx := xlog.ContextWithRunID(context.Background(), "run-42")
	report, err := g.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-42", report.RunID)

	report, err = g.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestRunMinified(t *testing.T) {
	src := youtube.NewMemorySource(testChannel, 50, youtube.Detail{ID: "A", Title: "Video A", Description: "d", PublishedAt: "2024"})
	opts := testOptions()
	opts.Minify = true
	g, root := newGenerator(t, src, opts)

	_, err := g.Run(context.Background())
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(root, "videos", "A.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Video A</title>")
	assert.NotContains(t, string(page), "\n  <h1>")

	sitemap, err := os.ReadFile(filepath.Join(root, storage.SitemapFile))
	require.NoError(t, err)
	var set site.URLSet
	require.NoError(t, xml.Unmarshal(sitemap, &set))
	assert.Len(t, set.URLs, 1)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChannelID = testChannel
	cfg.Escape = config.EscapeCompat
	cfg.Minify = true

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, testChannel, opts.ChannelID)
	assert.Equal(t, site.EscapeCompat, opts.Site.Escape)
	assert.Equal(t, cfg.BaseURL, opts.Site.BaseURL)
	assert.Equal(t, "videos", opts.Site.PagesDir)
	assert.True(t, opts.Minify)

	cfg.Escape = "bogus"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "listing", StateListing.String())
	assert.Equal(t, "enriching", StateEnriching.String())
	assert.Equal(t, "persisting", StatePersisting.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(99).String())
}
