package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/yaklabco/mdview/pkg/document"
)

// PageOptions configures standalone page rendering.
type PageOptions struct {
	// Title is the page title. Empty means the first TOC entry's title,
	// falling back to "Document".
	Title string

	// IncludeTOC adds a table-of-contents nav before the body.
	IncludeTOC bool
}

// pageTemplate is the standalone export page. Styling is deliberately
// minimal; math and diagram markup is left for client-side libraries.
//
//nolint:gochecknoglobals // parsed once at init
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem;
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6; color: #24292f; }
pre, .code { overflow-x: auto; border-radius: 6px; }
code { font-family: "SFMono-Regular", Consolas, monospace; font-size: 0.9em; }
blockquote { margin-left: 0; padding-left: 1rem;
  border-left: 4px solid #d0d7de; color: #57606a; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.3rem 0.8rem; }
nav.toc { border: 1px solid #d0d7de; border-radius: 6px;
  padding: 0.5rem 1rem; margin-bottom: 2rem; }
nav.toc ul { list-style: none; padding-left: 1rem; margin: 0.25rem 0; }
hr { border: 0; border-top: 1px solid #d0d7de; }
</style>
</head>
<body>
{{if .TOC}}{{.TOC}}{{end}}
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title string
	TOC   template.HTML
	Body  template.HTML
}

// Page renders the document as a complete standalone HTML page.
func (r *Renderer) Page(doc *document.Document, opts PageOptions) ([]byte, error) {
	title := opts.Title
	if title == "" {
		title = "Document"
		if len(doc.TOC) > 0 {
			title = doc.TOC[0].Title
		}
	}

	data := pageData{
		Title: title,
		Body:  template.HTML(r.Fragment(doc)), //nolint:gosec // our own escaped output
	}
	if opts.IncludeTOC && len(doc.TOC) > 0 {
		data.TOC = template.HTML(tocNav(doc.TOC)) //nolint:gosec // our own escaped output
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return []byte(sb.String()), nil
}

// tocNav renders the TOC as nested lists, one level per heading level.
func tocNav(toc []document.TocEntry) string {
	var sb strings.Builder
	sb.WriteString("<nav class=\"toc\">\n")

	level := 0
	for _, entry := range toc {
		for level < entry.Level {
			sb.WriteString("<ul>\n")
			level++
		}
		for level > entry.Level {
			sb.WriteString("</ul>\n")
			level--
		}
		fmt.Fprintf(&sb, "<li><a href=\"#%s\">%s</a></li>\n",
			entry.Anchor, template.HTMLEscapeString(entry.Title))
	}
	for level > 0 {
		sb.WriteString("</ul>\n")
		level--
	}

	sb.WriteString("</nav>\n")
	return sb.String()
}
