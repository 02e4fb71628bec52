package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// apiHelpMarkdown is the API access panel shown on the data explorer tab.
const apiHelpMarkdown = `
## API Access

The dashboard exposes its filtered data as JSON:

- **Endpoint:** ` + "`GET /api/data`" + `
- **Companion service:** the standalone API binary serves the combined
  payload (metrics, status counts, monthly trends and a preview of the
  records) on its own port.

### Filter parameters

| Parameter | Meaning |
|-----------|---------|
| ` + "`start` / `end`" + ` | enrolled-date range, YYYY-MM-DD, end inclusive |
| ` + "`categories`" + ` | comma-separated list of ACTIVE, NSF, CANCELLED, OTHER |
| ` + "`sources`" + ` | comma-separated worksheet names |
| ` + "`agent`" + ` | exact agent name |

The record preview is capped at 100 rows.
`

// renderAPIHelp renders the help panel markdown once at startup.
func renderAPIHelp() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(apiHelpMarkdown), p, renderer))
}
