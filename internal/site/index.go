package site

import (
	"html"
	"path"
	"strings"
)

const indexTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>All Videos</title>
  <meta name="description" content="Explore all our YouTube videos in one place." />
</head>
<body>
  <h1>All Videos</h1>
  <ul>
    {{items}}
  </ul>
</body>
</html>`

// RenderIndex renders the listing page: one list item per video, in order,
// each linking to the video's page under opts.PagesDir.
func RenderIndex(videos []Video, opts Options) string {
	text := func(s string) string { return s }
	if opts.Escape == EscapeStrict {
		text = html.EscapeString
	}

	items := make([]string, 0, len(videos))
	for _, v := range videos {
		href := path.Join(opts.PagesDir, PageFile(v.ID))
		items = append(items, `<li><a href="`+text(href)+`">`+text(v.Title)+`</a></li>`)
	}
	return strings.Replace(indexTemplate, "{{items}}", strings.Join(items, "\n"), 1)
}
