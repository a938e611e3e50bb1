package youtube

import (
	"context"
	"errors"

	"ytsite/internal/site"
)

// FetchVideo enriches a listed video ID into a catalogue record.
// It returns an error matching ErrNotFound when the API has no such video and
// an *UpstreamError for any other failure.
func FetchVideo(ctx context.Context, src Source, id string) (site.Video, error) {
	d, err := src.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return site.Video{}, err
		}
		return site.Video{}, upstream("detail", id, err)
	}
	if d == nil {
		return site.Video{}, &NotFoundError{ID: id}
	}
	return site.NewVideo(id, d.Title, d.Description, d.PublishedAt), nil
}
