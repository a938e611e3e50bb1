package site

import (
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/xml"
)

// Minifier shrinks rendered documents. A nil *Minifier passes input through.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a minifier for HTML pages (including their inline
// JSON-LD) and the XML sitemap.
func NewMinifier() *Minifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]xml$"), xml.Minify)
	return &Minifier{m: m}
}

// HTML minifies an HTML document.
func (mn *Minifier) HTML(s string) (string, error) {
	if mn == nil {
		return s, nil
	}
	return mn.m.String("text/html", s)
}

// XML minifies an XML document.
func (mn *Minifier) XML(s string) (string, error) {
	if mn == nil {
		return s, nil
	}
	return mn.m.String("application/xml", s)
}
