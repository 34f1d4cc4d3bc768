package parse

import (
	"regexp"
	"strings"

	"github.com/dgallion1/examgest/internal/exam"
)

// Section-title marker: "PHẦN <id>", with an optional leading bullet. The
// trailing label runs until the next question anchor (or the next section
// marker / end of text, whichever comes first). If a title legitimately
// contained a question-marker substring it would be truncated early; that
// matches how these documents are actually laid out.
var sectionAnchorRe = regexp.MustCompile(`(?:^|\n)[\s•*▪–-]*PHẦN\s+([^\s.:,–-]+)`)

func findSections(text string, anchors []anchor) []exam.Section {
	matches := sectionAnchorRe.FindAllStringSubmatchIndex(text, -1)
	sections := make([]exam.Section, 0, len(matches))

	for i, m := range matches {
		start := markerStart(text, m[0])
		end := len(text)
		if i+1 < len(matches) {
			end = markerStart(text, matches[i+1][0])
		}

		titleEnd := end
		for _, a := range anchors {
			if a.offset > start && a.offset < titleEnd {
				titleEnd = a.offset
				break
			}
		}

		sections = append(sections, exam.Section{
			Order:       i + 1,
			ID:          text[m[2]:m[3]],
			Title:       normalizeTitle(text[start:titleEnd]),
			StartOffset: start,
			EndOffset:   end,
		})
	}
	return sections
}

// markerStart skips past the newline the marker regex may have consumed.
func markerStart(text string, at int) int {
	for at < len(text) && (text[at] == '\n' || text[at] == '\r') {
		at++
	}
	return at
}

func normalizeTitle(s string) string {
	s = strings.TrimLeft(s, " \t•*▪–-")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
