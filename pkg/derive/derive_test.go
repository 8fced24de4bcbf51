package derive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/derive"
	"github.com/yaklabco/mdview/pkg/document"
	goldmark "github.com/yaklabco/mdview/pkg/parser/goldmark"
)

func deriveFrom(t *testing.T, input string, opts derive.Options) *document.Document {
	t.Helper()
	doc := goldmark.New(goldmark.Options{}).Parse([]byte(input))
	return derive.Apply(doc, opts)
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Introduction", "introduction"},
		{"Getting Started", "getting-started"},
		{"What's New?", "what-s-new"},
		{"  Spaces  Around  ", "spaces-around"},
		{"C++ & Go!", "c-go"},
		{"Version 2.0", "version-2-0"},
		{"---", ""},
		{"", ""},
		{"Ünïcödé Héädîng", "ünïcödé-héädîng"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, derive.Slug(tt.title))
		})
	}
}

func TestTocAnchorCollisions(t *testing.T) {
	t.Parallel()

	input := "# Setup\n\n## Setup\n\n### Setup\n\n## Other\n"
	doc := deriveFrom(t, input, derive.Options{})

	require.Len(t, doc.TOC, 4)
	assert.Equal(t, "setup", doc.TOC[0].Anchor)
	assert.Equal(t, "setup-2", doc.TOC[1].Anchor)
	assert.Equal(t, "setup-3", doc.TOC[2].Anchor)
	assert.Equal(t, "other", doc.TOC[3].Anchor)
}

func TestTocAnchorCollisionWithLiteralSuffix(t *testing.T) {
	t.Parallel()

	// A heading literally titled "Intro-2" must not reuse the anchor
	// minted for the second "Intro".
	input := "# Intro\n\n## Intro\n\n## Intro-2\n"
	doc := deriveFrom(t, input, derive.Options{})

	require.Len(t, doc.TOC, 3)
	anchors := map[string]bool{}
	for _, entry := range doc.TOC {
		assert.False(t, anchors[entry.Anchor], "duplicate anchor %q", entry.Anchor)
		anchors[entry.Anchor] = true
	}
	assert.Equal(t, "intro", doc.TOC[0].Anchor)
	assert.Equal(t, "intro-2", doc.TOC[1].Anchor)
	assert.Equal(t, "intro-2-2", doc.TOC[2].Anchor)
}

func TestTocEntries(t *testing.T) {
	t.Parallel()

	input := "# Title\n\nsome text\n\n## Section *one*\n\nmore text\n"
	doc := deriveFrom(t, input, derive.Options{})

	require.Len(t, doc.TOC, 2)

	assert.Equal(t, 1, doc.TOC[0].Level)
	assert.Equal(t, "Title", doc.TOC[0].Title)
	assert.Equal(t, 0, doc.TOC[0].SourceLine)

	assert.Equal(t, 2, doc.TOC[1].Level)
	// Emphasis contributes its nested text to the title.
	assert.Equal(t, "Section one", doc.TOC[1].Title)
	assert.Equal(t, "section-one", doc.TOC[1].Anchor)
	assert.Equal(t, 4, doc.TOC[1].SourceLine)
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "plain paragraph",
			input: "one two three four\n",
			want:  4,
		},
		{
			name:  "heading words count",
			input: "# Two Words\n\nthree more words here\n",
			want:  6,
		},
		{
			name:  "code blocks excluded",
			input: "intro words\n\n```go\nfunc main() { fmt.Println() }\n```\n",
			want:  2,
		},
		{
			name:  "math excluded",
			input: "$$\nE = mc^2\n$$\n\nreal prose\n",
			want:  2,
		},
		{
			name:  "list items counted once",
			input: "- alpha beta\n- gamma\n",
			want:  3,
		},
		{
			name:  "table cells excluded",
			input: "| a | b |\n|---|---|\n| c | d |\n",
			want:  0,
		},
		{
			name:  "empty document",
			input: "",
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := deriveFrom(t, tt.input, derive.Options{})
			assert.Equal(t, tt.want, doc.WordCount)
		})
	}
}

func TestWordCountGrowsWithContent(t *testing.T) {
	t.Parallel()

	base := "# Doc\n\n"
	prev := 0
	for i := 1; i <= 5; i++ {
		base += "more words arrive here\n\n"
		doc := deriveFrom(t, base, derive.Options{})
		assert.Greater(t, doc.WordCount, prev)
		prev = doc.WordCount
	}
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	t.Run("empty document reads in zero minutes", func(t *testing.T) {
		doc := deriveFrom(t, "", derive.Options{})
		assert.Zero(t, doc.ReadingTimeMinutes)
	})

	t.Run("short document rounds up to one minute", func(t *testing.T) {
		doc := deriveFrom(t, "just a few words\n", derive.Options{})
		assert.Equal(t, 1, doc.ReadingTimeMinutes)
	})

	t.Run("ceil division at default speed", func(t *testing.T) {
		// 201 words at 200 wpm is 2 minutes.
		words := strings.Repeat("word ", 201)
		doc := deriveFrom(t, words+"\n", derive.Options{})
		require.Equal(t, 201, doc.WordCount)
		assert.Equal(t, 2, doc.ReadingTimeMinutes)
	})

	t.Run("custom speed", func(t *testing.T) {
		words := strings.Repeat("word ", 100)
		doc := deriveFrom(t, words+"\n", derive.Options{WordsPerMinute: 50})
		assert.Equal(t, 2, doc.ReadingTimeMinutes)
	})
}

func TestDeriveHeadingsOnlyDocument(t *testing.T) {
	t.Parallel()

	doc := deriveFrom(t, "# A\n\n## B\n", derive.Options{})
	assert.Len(t, doc.TOC, 2)
	assert.Equal(t, 2, doc.WordCount)
	assert.Equal(t, 1, doc.ReadingTimeMinutes)
}
