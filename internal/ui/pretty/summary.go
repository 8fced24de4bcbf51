package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdview/pkg/document"
	"github.com/yaklabco/mdview/pkg/scan"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatDocStats formats statistics for a single document.
func (s *Styles) FormatDocStats(path string, doc *document.Document) string {
	var builder strings.Builder

	builder.WriteString(s.Path.Render(path))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Words:        " + s.Value.Render(strconv.Itoa(doc.WordCount)) + "\n")
	builder.WriteString("  Reading time: " + s.Value.Render(formatMinutes(doc.ReadingTimeMinutes)) + "\n")
	builder.WriteString("  Headings:     " + s.Value.Render(strconv.Itoa(len(doc.TOC))) + "\n")
	builder.WriteString("  Blocks:       " + s.Value.Render(strconv.Itoa(len(doc.TopLevel()))) + "\n")
	builder.WriteString("  Size:         " + s.Value.Render(formatBytes(doc.SourceByteLength)) + "\n")

	return builder.String()
}

// FormatScanSummaryOneLine formats scan statistics as a single line.
// Example: "4213 words across 12 files, ~22 min".
func (s *Styles) FormatScanSummaryOneLine(stats scan.Stats) string {
	fileWord := wordFiles
	if stats.FilesProcessed == 1 {
		fileWord = wordFile
	}

	line := fmt.Sprintf("%s words across %s %s, ~%s",
		s.Value.Render(strconv.Itoa(stats.Words)),
		s.Value.Render(strconv.Itoa(stats.FilesProcessed)),
		fileWord,
		s.Value.Render(formatMinutes(stats.ReadingTimeMinutes)))

	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
	}
	return line + "\n"
}

// FormatScanSummary formats scan statistics as a summary block.
func (s *Styles) FormatScanSummary(result *scan.Result) string {
	var builder strings.Builder
	stats := result.Stats

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:   " + s.Value.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files read:    " + s.Value.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored: " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Words:         " + s.Value.Render(strconv.Itoa(stats.Words)) + "\n")
	builder.WriteString("  Reading time:  " + s.Value.Render(formatMinutes(stats.ReadingTimeMinutes)) + "\n")
	builder.WriteString("  Headings:      " + s.Value.Render(strconv.Itoa(stats.Headings)) + "\n")
	builder.WriteString("  Blocks:        " + s.Value.Render(strconv.Itoa(stats.Blocks)) + "\n")
	builder.WriteString("  Size:          " + s.Value.Render(formatBytes(stats.Bytes)) + "\n")

	return builder.String()
}

// FormatStatusLine formats a one-line document status shown under watch-mode
// renders. Example: "README.md  420 words, ~3 min".
func (s *Styles) FormatStatusLine(path string, doc *document.Document) string {
	return s.Dim.Render(fmt.Sprintf("%s  %d words, ~%s",
		path, doc.WordCount, formatMinutes(doc.ReadingTimeMinutes))) + "\n"
}

func formatMinutes(minutes int) string {
	if minutes == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d min", minutes)
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
