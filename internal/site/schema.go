package site

import (
	"bytes"
	"encoding/json"
)

// VideoObject is the schema.org VideoObject describing one video page.
type VideoObject struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	UploadDate   string `json:"uploadDate"`
	ContentURL   string `json:"contentUrl"`
	EmbedURL     string `json:"embedUrl"`
}

// BuildSchema maps a video onto its structured-data object.
func BuildSchema(v Video) VideoObject {
	return VideoObject{
		Context:      "https://schema.org",
		Type:         "VideoObject",
		Name:         v.Title,
		Description:  v.Description,
		ThumbnailURL: v.Thumbnail,
		UploadDate:   v.ISODate,
		ContentURL:   v.VideoURL,
		EmbedURL:     v.VideoURL,
	}
}

// MarshalLD encodes obj as two-space indented JSON-LD. With escapeHTML the
// characters <, > and & are emitted as \u escapes so the payload cannot close
// the surrounding script element.
func MarshalLD(obj VideoObject, escapeHTML bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(escapeHTML)
	if err := enc.Encode(obj); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
