package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdview/pkg/document"
)

const tocIndentWidth = 2

// FormatTOC renders a table of contents as an indented outline. Each entry
// is indented by its heading level relative to level 1, followed by the
// anchor and 1-based source line.
//
//	Introduction  #introduction  :1
//	  Setup  #setup  :9
func (s *Styles) FormatTOC(toc []document.TocEntry) string {
	if len(toc) == 0 {
		return s.Dim.Render("(no headings)") + "\n"
	}

	var builder strings.Builder
	for _, entry := range toc {
		indent := strings.Repeat(" ", tocIndentWidth*(entry.Level-1))
		builder.WriteString(indent)
		builder.WriteString(s.Heading.Render(entry.Title))
		builder.WriteString("  ")
		builder.WriteString(s.Anchor.Render("#" + entry.Anchor))
		builder.WriteString("  ")
		builder.WriteString(s.Line.Render(fmt.Sprintf(":%d", entry.SourceLine+1)))
		builder.WriteString("\n")
	}
	return builder.String()
}
