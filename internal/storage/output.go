// Package storage persists the generated site to the filesystem. Every file
// is written through a renameio pending file, so readers never observe a
// partially written artifact.
package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"ytsite/internal/site"
)

// Artifact file names at the site root.
const (
	CatalogFile = "videos.json"
	IndexFile   = "index.html"
	SitemapFile = "sitemap.xml"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Output writes site artifacts below Root. Pages go to Root/PagesDir.
type Output struct {
	Root     string
	PagesDir string
}

// NewOutput returns an Output rooted at root with pages in root/pagesDir.
func NewOutput(root, pagesDir string) *Output {
	return &Output{Root: root, PagesDir: pagesDir}
}

// PagesPath returns the directory holding per-video pages.
func (o *Output) PagesPath() string {
	return filepath.Join(o.Root, o.PagesDir)
}

// PagePath returns the file a video's page is written to.
func (o *Output) PagePath(id string) string {
	return filepath.Join(o.PagesPath(), site.PageFile(id))
}

// EnsurePagesDir creates the site root and pages directory if absent.
func (o *Output) EnsurePagesDir() error {
	if err := os.MkdirAll(o.PagesPath(), dirPerm); err != nil {
		return &StorageError{Op: "mkdir", Entity: "pages dir", Path: o.PagesPath(), Err: err}
	}
	return nil
}

// WritePage writes the rendered page of video id.
func (o *Output) WritePage(id, doc string) error {
	if !validName(id) {
		return &StorageError{Op: "write", Entity: "page", Path: id, Err: ErrInvalidName}
	}
	return writeFile(o.PagePath(id), "page", func(w io.Writer) error {
		_, err := io.WriteString(w, doc)
		return err
	})
}

// WriteCatalog writes videos as a JSON array indented by two spaces, with no
// trailing newline. An empty collection is written as [].
func (o *Output) WriteCatalog(videos []site.Video) error {
	if videos == nil {
		videos = []site.Video{}
	}
	path := filepath.Join(o.Root, CatalogFile)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(videos); err != nil {
		return &StorageError{Op: "encode", Entity: "catalog", Path: path, Err: err}
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	return writeFile(path, "catalog", func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteIndex writes the index page.
func (o *Output) WriteIndex(doc string) error {
	return writeFile(filepath.Join(o.Root, IndexFile), "index", func(w io.Writer) error {
		_, err := io.WriteString(w, doc)
		return err
	})
}

// WriteSitemap writes the XML sitemap.
func (o *Output) WriteSitemap(doc string) error {
	return writeFile(filepath.Join(o.Root, SitemapFile), "sitemap", func(w io.Writer) error {
		_, err := io.WriteString(w, doc)
		return err
	})
}

// ReadCatalog parses a catalogue previously written by WriteCatalog.
func ReadCatalog(path string) ([]site.Video, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Entity: "catalog", Path: path, Err: err}
	}
	var videos []site.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, &StorageError{Op: "read", Entity: "catalog", Path: path, Err: err}
	}
	return videos, nil
}

// writeFile atomically replaces path with what write produces.
func writeFile(path, entity string, write func(io.Writer) error) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(filePerm))
	if err != nil {
		return &StorageError{Op: "write", Entity: entity, Path: path, Err: err}
	}
	// No-op once the file has been committed.
	defer pending.Cleanup()

	if err := write(pending); err != nil {
		return &StorageError{Op: "write", Entity: entity, Path: path, Err: err}
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return &StorageError{Op: "write", Entity: entity, Path: path, Err: err}
	}
	return nil
}

// validName reports whether name is usable as a single path element.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
