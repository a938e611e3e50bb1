// Package site renders the static catalogue site: per-video pages, the
// schema.org structured data embedded in them, the index page and the sitemap.
package site

import (
	"fmt"
	"strings"
)

// Video is one enriched catalogue entry. Its JSON form is the element
// format of videos.json.
type Video struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string `json:"id"`
	// Title is the video title.
	Title string `json:"title"`
	// Description is the full video description.
	Description string `json:"description"`
	// Thumbnail is the max-resolution thumbnail URL derived from ID.
	Thumbnail string `json:"thumbnail"`
	// VideoURL is the embed URL derived from ID.
	VideoURL string `json:"videoUrl"`
	// ISODate is the publish timestamp exactly as the API reported it.
	ISODate string `json:"isoDate"`
}

// NewVideo builds a Video, deriving the thumbnail and embed URLs from id.
func NewVideo(id, title, description, publishedAt string) Video {
	return Video{
		ID:          id,
		Title:       title,
		Description: description,
		Thumbnail:   ThumbnailURL(id),
		VideoURL:    EmbedURL(id),
		ISODate:     publishedAt,
	}
}

// ThumbnailURL returns the max-resolution thumbnail URL for a video ID.
func ThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg"
}

// EmbedURL returns the embeddable player URL for a video ID.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// PageFile returns the file name of a video's page.
func PageFile(id string) string {
	return id + ".html"
}

// CanonicalURL returns the public URL of a video's page under baseURL.
func CanonicalURL(baseURL, id string) string {
	return baseURL + PageFile(id)
}

// EscapeMode selects how interpolated text is escaped in pages.
type EscapeMode int

const (
	// EscapeStrict HTML-escapes every interpolated value for its context.
	EscapeStrict EscapeMode = iota
	// EscapeCompat only replaces double quotes in descriptions placed in attributes.
	EscapeCompat
)

// ParseEscapeMode maps a config value onto an EscapeMode.
func ParseEscapeMode(s string) (EscapeMode, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return EscapeStrict, nil
	case "compat":
		return EscapeCompat, nil
	}
	return EscapeStrict, fmt.Errorf("unknown escape mode %q", s)
}

func (m EscapeMode) String() string {
	if m == EscapeCompat {
		return "compat"
	}
	return "strict"
}
