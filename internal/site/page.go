package site

import (
	"fmt"
	"html"
	"strings"
)

// Options carries the site-wide settings every renderer needs.
type Options struct {
	// BaseURL is the public prefix of video pages; it ends with "/".
	BaseURL string
	// PagesDir is the pages directory relative to the site root, used for index links.
	PagesDir string
	// Escape selects the escaping policy for interpolated text.
	Escape EscapeMode
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>%[1]s</title>
  <meta name="description" content="%[2]s" />
  <meta property="og:title" content="%[3]s" />
  <meta property="og:description" content="%[2]s" />
  <meta property="og:image" content="%[4]s" />
  <meta property="og:url" content="%[5]s" />
  <meta property="og:type" content="video.other" />
  <script type="application/ld+json">%[6]s</script>
</head>
<body>
  <h1>%[1]s</h1>
  <iframe width="100%%" height="480" src="%[7]s" frameborder="0" allowfullscreen></iframe>
  <p>%[8]s</p>
  <a href="/index.html">⬅ Back to all videos</a>
</body>
</html>`

// quoteReplacer swaps double quotes for apostrophes so a description can sit
// inside a double-quoted attribute.
var quoteReplacer = strings.NewReplacer(`"`, "'")

// AttrSafe replaces every double quote in s with an apostrophe.
func AttrSafe(s string) string {
	return quoteReplacer.Replace(s)
}

// RenderPage renders the HTML document for one video.
func RenderPage(v Video, obj VideoObject, opts Options) (string, error) {
	strict := opts.Escape == EscapeStrict

	ld, err := MarshalLD(obj, strict)
	if err != nil {
		return "", fmt.Errorf("encode structured data for %s: %w", v.ID, err)
	}

	text := func(s string) string { return s }
	if strict {
		text = html.EscapeString
	}

	page := fmt.Sprintf(pageTemplate,
		text(v.Title),
		text(AttrSafe(v.Description)),
		text(v.Title),
		text(v.Thumbnail),
		text(CanonicalURL(opts.BaseURL, v.ID)),
		ld,
		text(v.VideoURL),
		text(v.Description),
	)
	return page, nil
}
