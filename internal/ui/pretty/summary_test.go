package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/document"
	"github.com/yaklabco/mdview/pkg/scan"
)

func TestFormatDocStats(t *testing.T) {
	styles := pretty.NewStyles(false)

	doc := &document.Document{
		WordCount:          420,
		ReadingTimeMinutes: 3,
		SourceByteLength:   2048,
		TOC: []document.TocEntry{
			{Level: 1, Title: "Intro", Anchor: "intro"},
		},
	}

	result := styles.FormatDocStats("docs/guide.md", doc)

	assert.Contains(t, result, "docs/guide.md")
	assert.Contains(t, result, "Words:")
	assert.Contains(t, result, "420")
	assert.Contains(t, result, "Reading time:")
	assert.Contains(t, result, "3 min")
	assert.Contains(t, result, "Headings:")
	assert.Contains(t, result, "Size:")
	assert.Contains(t, result, "2.0 KiB")
}

func TestFormatScanSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	line := styles.FormatScanSummaryOneLine(scan.Stats{
		FilesProcessed:     12,
		Words:              4213,
		ReadingTimeMinutes: 22,
	})
	assert.Equal(t, "4213 words across 12 files, ~22 min\n", line)
}

func TestFormatScanSummaryOneLine_SingleFile(t *testing.T) {
	styles := pretty.NewStyles(false)

	line := styles.FormatScanSummaryOneLine(scan.Stats{
		FilesProcessed:     1,
		Words:              180,
		ReadingTimeMinutes: 1,
	})
	assert.Equal(t, "180 words across 1 file, ~1 min\n", line)
}

func TestFormatScanSummaryOneLine_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	line := styles.FormatScanSummaryOneLine(scan.Stats{
		FilesProcessed:     3,
		FilesErrored:       2,
		Words:              90,
		ReadingTimeMinutes: 1,
	})
	assert.Contains(t, line, "2 unreadable")
}

func TestFormatScanSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatScanSummary(&scan.Result{
		Stats: scan.Stats{
			FilesDiscovered:    5,
			FilesProcessed:     4,
			FilesErrored:       1,
			Words:              1000,
			ReadingTimeMinutes: 5,
			Headings:           12,
			Blocks:             40,
			Bytes:              512,
		},
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files found:")
	assert.Contains(t, result, "5")
	assert.Contains(t, result, "Files read:")
	assert.Contains(t, result, "Files errored:")
	assert.Contains(t, result, "Words:")
	assert.Contains(t, result, "1000")
	assert.Contains(t, result, "512 B")
}

func TestFormatScanSummary_NoErrorsOmitsErrorLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatScanSummary(&scan.Result{
		Stats: scan.Stats{FilesDiscovered: 2, FilesProcessed: 2},
	})
	assert.NotContains(t, result, "Files errored:")
}

func TestFormatTOC(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatTOC([]document.TocEntry{
		{Level: 1, Title: "Introduction", Anchor: "introduction", SourceLine: 0},
		{Level: 2, Title: "Setup", Anchor: "setup", SourceLine: 8},
		{Level: 3, Title: "Linux", Anchor: "linux", SourceLine: 12},
	})

	assert.Contains(t, result, "Introduction  #introduction  :1\n")
	assert.Contains(t, result, "  Setup  #setup  :9\n")
	assert.Contains(t, result, "    Linux  #linux  :13\n")
}

func TestFormatTOC_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatTOC(nil)
	assert.Equal(t, "(no headings)\n", result)
}
