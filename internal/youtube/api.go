package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APISource implements Source on the YouTube Data API v3:
// search.list for the listing and videos.list for details.
type APISource struct {
	service  *youtube.Service
	pageSize int64
}

// APIOptions configures an APISource.
type APIOptions struct {
	// HTTPClient carries the API key and timeouts (see internal/httpclient).
	HTTPClient *http.Client
	// Endpoint overrides the API base URL. Empty uses the public endpoint.
	Endpoint string
	// PageSize is maxResults for search.list (1-50).
	PageSize int64
}

// NewAPISource creates a Source backed by the YouTube Data API.
func NewAPISource(ctx context.Context, opts APIOptions) (*APISource, error) {
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("http client required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(opts.HTTPClient)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APISource{service: service, pageSize: opts.PageSize}, nil
}

// ListPage fetches one search.list page of the channel's content, newest first.
func (a *APISource) ListPage(ctx context.Context, channelID, cursor string) (*Page, error) {
	call := a.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Order("date").
		MaxResults(a.pageSize).
		Context(ctx)
	if cursor != "" {
		call = call.PageToken(cursor)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, &UpstreamError{Op: "list", ID: channelID, StatusCode: statusCode(err), Err: err}
	}

	page := &Page{
		Items:      make([]Item, 0, len(resp.Items)),
		NextCursor: resp.NextPageToken,
	}
	for _, r := range resp.Items {
		if r.Id == nil {
			continue
		}
		item := Item{Kind: r.Id.Kind, ID: r.Id.VideoId}
		switch r.Id.Kind {
		case "youtube#channel":
			item.ID = r.Id.ChannelId
		case "youtube#playlist":
			item.ID = r.Id.PlaylistId
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

// Detail fetches the snippet of one video with videos.list.
func (a *APISource) Detail(ctx context.Context, id string) (*Detail, error) {
	resp, err := a.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		code := statusCode(err)
		if code == http.StatusNotFound {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &UpstreamError{Op: "detail", ID: id, StatusCode: code, Err: err}
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, &NotFoundError{ID: id}
	}

	snippet := resp.Items[0].Snippet
	return &Detail{
		ID:          id,
		Title:       snippet.Title,
		Description: snippet.Description,
		PublishedAt: snippet.PublishedAt,
	}, nil
}

// statusCode extracts the HTTP status of a googleapi error, or 0.
func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
