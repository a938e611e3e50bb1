package site

import (
	"encoding/xml"
	"fmt"
)

// SitemapNamespace is the xmlns of the generated urlset.
const SitemapNamespace = "https://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one sitemap entry.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// BuildSitemap maps videos onto sitemap entries, preserving order.
func BuildSitemap(videos []Video, baseURL string) URLSet {
	set := URLSet{Xmlns: SitemapNamespace, URLs: make([]SitemapURL, 0, len(videos))}
	for _, v := range videos {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:     CanonicalURL(baseURL, v.ID),
			LastMod: v.ISODate,
		})
	}
	return set
}

// RenderSitemap renders the XML sitemap for videos.
func RenderSitemap(videos []Video, baseURL string) (string, error) {
	out, err := xml.MarshalIndent(BuildSitemap(videos, baseURL), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
