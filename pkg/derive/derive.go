// Package derive computes the table of contents and reading statistics of a
// parsed document. Everything here is a pure function of the block sequence;
// derived values are recomputed only when a new document snapshot is
// installed, never on read.
package derive

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/mdview/pkg/document"
)

// DefaultWordsPerMinute is the reading-speed constant used when no explicit
// value is configured.
const DefaultWordsPerMinute = 200

// Options configures derivation.
type Options struct {
	// WordsPerMinute is the assumed reading speed. Zero or negative means
	// DefaultWordsPerMinute.
	WordsPerMinute int
}

func (o Options) wordsPerMinute() int {
	if o.WordsPerMinute <= 0 {
		return DefaultWordsPerMinute
	}
	return o.WordsPerMinute
}

// Derive computes the TOC, word count, and reading time for a flattened
// block sequence.
//
// Word count covers whitespace-delimited tokens of heading and paragraph
// text, including the paragraphs nested in list items. Code blocks, math,
// raw HTML, and table cells are excluded; code is not prose.
//
// Reading time is ceil(words / wpm), minimum 1 whenever any words are
// present and 0 otherwise.
func Derive(blocks []*document.Block, opts Options) (toc []document.TocEntry, wordCount, readingMinutes int) {
	slugs := make(map[string]int)

	for _, b := range blocks {
		if text := b.ProseText(); text != "" {
			wordCount += len(strings.Fields(text))
		}

		if b.Kind != document.KindHeading {
			continue
		}

		title := document.PlainText(b.Spans)
		toc = append(toc, document.TocEntry{
			Level:      b.Level,
			Title:      title,
			Anchor:     uniqueSlug(title, slugs),
			SourceLine: b.StartLine,
		})
	}

	if wordCount > 0 {
		wpm := opts.wordsPerMinute()
		readingMinutes = (wordCount + wpm - 1) / wpm
	}
	return toc, wordCount, readingMinutes
}

// Apply fills a document's derived fields in place and returns it. The
// document is still under construction at this point; installed snapshots
// are never mutated.
func Apply(doc *document.Document, opts Options) *document.Document {
	doc.TOC, doc.WordCount, doc.ReadingTimeMinutes = Derive(doc.Blocks, opts)
	return doc
}

// Slug derives an anchor slug from a heading title: lowercased, with runs of
// non-alphanumeric characters collapsed to single hyphens and leading or
// trailing hyphens trimmed.
func Slug(title string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}

// uniqueSlug disambiguates colliding slugs with -2, -3, ... suffixes in
// order of appearance. A generated suffix counts as taken, so a heading
// literally titled "Intro-2" cannot collide with the suffix minted for a
// second "Intro".
func uniqueSlug(title string, seen map[string]int) string {
	base := Slug(title)
	seen[base]++
	if seen[base] == 1 {
		return base
	}
	for {
		candidate := fmt.Sprintf("%s-%d", base, seen[base])
		if seen[candidate] == 0 {
			seen[candidate]++
			return candidate
		}
		seen[base]++
	}
}
