package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "videos"), 0755))
	files := map[string]string{
		"index.html":    "<ul><li>A</li></ul>",
		"sitemap.xml":   `<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`,
		"videos/A.html": "<h1>A</h1>",
		"videos.json":   "[]",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(body), 0644))
	}
	return root
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServesSite(t *testing.T) {
	h := New(writeSite(t), zerolog.Nop())

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "<ul><li>A</li></ul>"},
		{"/videos/A.html", http.StatusOK, "<h1>A</h1>"},
		{"/videos.json", http.StatusOK, "[]"},
		{"/healthz", http.StatusOK, "ok"},
		{"/videos/missing.html", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestSitemapContentType(t *testing.T) {
	rec := get(t, New(writeSite(t), zerolog.Nop()), "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := New(writeSite(t), zerolog.New(&buf))

	get(t, h, "/videos/A.html")
	assert.Contains(t, buf.String(), `"path":"/videos/A.html"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler())
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}
