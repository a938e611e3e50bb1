package ytsite

import (
	"ytsite/internal/storage"
	"ytsite/internal/youtube"
)

// Error handling types exported for library users.
//
// From youtube package:
//   - youtube.UpstreamError: list or detail endpoint failure
//   - youtube.NotFoundError: detail endpoint has no such video
//   - youtube.ErrNotFound: matched by NotFoundError
//
// From storage package:
//   - storage.StorageError: filesystem failure while writing the site
//   - storage.ErrInvalidName: video ID unusable as a file name

// Type aliases for convenient error handling.
type (
	// UpstreamError wraps a failed YouTube API call.
	UpstreamError = youtube.UpstreamError
	// NotFoundError reports a video ID the API does not know.
	NotFoundError = youtube.NotFoundError
	// StorageError wraps errors while writing site artifacts.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNotFound indicates the API has no record for a video ID.
	ErrNotFound = youtube.ErrNotFound
	// ErrInvalidName indicates a video ID that cannot be used as a file name.
	ErrInvalidName = storage.ErrInvalidName
)

// IsItemLocal reports whether err only affects a single video during
// enrichment. Listing and storage errors are fatal to a run.
func IsItemLocal(err error) bool {
	return youtube.IsItemLocal(err)
}
