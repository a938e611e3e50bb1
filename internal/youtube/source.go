// Package youtube lists a channel's videos and fetches per-video metadata
// from the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
)

// KindVideo marks list items that are videos. The list endpoint also returns
// channels and playlists, which are skipped.
const KindVideo = "youtube#video"

// ErrNotFound indicates the detail endpoint has no record for a video ID.
var ErrNotFound = errors.New("youtube: video not found")

// Source is the capability the lister and enricher need from the API.
type Source interface {
	// ListPage fetches one page of the channel's uploads. An empty cursor
	// requests the first page.
	ListPage(ctx context.Context, channelID, cursor string) (*Page, error)

	// Detail fetches the metadata of a single video.
	Detail(ctx context.Context, id string) (*Detail, error)
}

// Page is one page of the channel listing.
type Page struct {
	Items []Item
	// NextCursor continues the listing; empty on the last page.
	NextCursor string
}

// Item is one kind-tagged entry of a listing page.
type Item struct {
	Kind string
	ID   string
}

// Detail is the metadata the detail endpoint reports for one video.
type Detail struct {
	ID          string
	Title       string
	Description string
	// PublishedAt is the RFC 3339 publish timestamp, kept verbatim.
	PublishedAt string
}

// NotFoundError reports a video ID the detail endpoint does not know.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "youtube: video " + e.ID + " not found"
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UpstreamError wraps a failed call to the list or detail endpoint.
type UpstreamError struct {
	Op         string // "list" or "detail"
	ID         string // channel ID for list, video ID for detail
	StatusCode int    // HTTP status when the API answered, 0 otherwise
	Err        error  // Underlying error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube: %s %s: status %d: %v", e.Op, e.ID, e.StatusCode, e.Err)
	}
	return "youtube: " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// upstream wraps err as an *UpstreamError unless it already is one.
func upstream(op, id string, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Op: op, ID: id, Err: err}
}

// IsItemLocal reports whether err, returned while enriching one video, should
// skip that video rather than abort the run.
func IsItemLocal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Op == "detail"
}
