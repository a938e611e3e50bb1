package youtube

import (
	"context"
	"fmt"
)

// ListVideoIDs walks the channel listing page by page and returns the IDs of
// all video items in page-then-item order. It stops when a page carries no
// continuation cursor. Any page failure, or a cursor that revisits an
// earlier page, aborts the listing.
func ListVideoIDs(ctx context.Context, src Source, channelID string) ([]string, error) {
	ids := []string{}
	cursor := ""
	seen := map[string]struct{}{}
	for {
		page, err := src.ListPage(ctx, channelID, cursor)
		if err != nil {
			return nil, upstream("list", channelID, err)
		}
		if page == nil {
			return nil, &UpstreamError{Op: "list", ID: channelID, Err: fmt.Errorf("empty response for cursor %q", cursor)}
		}

		for _, item := range page.Items {
			if item.Kind == KindVideo {
				ids = append(ids, item.ID)
			}
		}

		if page.NextCursor == "" {
			return ids, nil
		}
		seen[cursor] = struct{}{}
		if _, ok := seen[page.NextCursor]; ok {
			return nil, &UpstreamError{Op: "list", ID: channelID, Err: fmt.Errorf("cursor %q already visited", page.NextCursor)}
		}
		cursor = page.NextCursor
	}
}
