package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// MemorySource is an in-memory Source. Pages are keyed by the cursor that
// requests them; the first page is keyed by "".
type MemorySource struct {
	ChannelID string
	Pages     map[string]Page
	Details   map[string]Detail

	// ListErr, when set, fails every ListPage call.
	ListErr error
	// DetailErrs fails Detail for specific IDs.
	DetailErrs map[string]error

	ListCalls   int
	DetailCalls int
}

// NewMemorySource splits details into video pages of pageSize items,
// chained by cursors "page-2", "page-3", ... Every ID gets a detail record.
func NewMemorySource(channelID string, pageSize int, details ...Detail) *MemorySource {
	if pageSize <= 0 {
		pageSize = 50
	}
	m := &MemorySource{
		ChannelID: channelID,
		Pages:     map[string]Page{"": {}},
		Details:   make(map[string]Detail, len(details)),
	}

	cursor := ""
	for start := 0; start < len(details); start += pageSize {
		end := min(start+pageSize, len(details))
		page := Page{}
		for _, d := range details[start:end] {
			page.Items = append(page.Items, Item{Kind: KindVideo, ID: d.ID})
			m.Details[d.ID] = d
		}
		if end < len(details) {
			page.NextCursor = "page-" + strconv.Itoa(start/pageSize+2)
		}
		m.Pages[cursor] = page
		cursor = page.NextCursor
	}
	return m
}

// ListPage implements Source.
func (m *MemorySource) ListPage(ctx context.Context, channelID, cursor string) (*Page, error) {
	m.ListCalls++
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Op: "list", ID: channelID, Err: err}
	}
	if m.ListErr != nil {
		return nil, &UpstreamError{Op: "list", ID: channelID, Err: m.ListErr}
	}
	if m.ChannelID != "" && channelID != m.ChannelID {
		return nil, &UpstreamError{Op: "list", ID: channelID, StatusCode: http.StatusNotFound, Err: fmt.Errorf("unknown channel")}
	}
	page, ok := m.Pages[cursor]
	if !ok {
		return nil, &UpstreamError{Op: "list", ID: channelID, StatusCode: http.StatusBadRequest, Err: fmt.Errorf("invalid page token %q", cursor)}
	}
	return &page, nil
}

// Detail implements Source.
func (m *MemorySource) Detail(ctx context.Context, id string) (*Detail, error) {
	m.DetailCalls++
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Op: "detail", ID: id, Err: err}
	}
	if err, ok := m.DetailErrs[id]; ok {
		return nil, err
	}
	d, ok := m.Details[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &d, nil
}
