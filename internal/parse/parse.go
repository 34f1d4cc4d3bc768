// Package parse recovers the exam structure from extracted text: question
// blocks anchored at numbering markers, section groupings, and the merged
// block sequence. The text has no formal grammar; classification leans on
// positional and stylistic cues (starred markers, underlined letters), and
// anything unrecognizable degrades to a short-answer question rather than
// an error.
package parse

import (
	"regexp"
	"strconv"

	"github.com/dgallion1/examgest/internal/exam"
)

var questionAnchorRe = regexp.MustCompile(`Câu\s+(\d+)\s*[.:]`)

// anchor is one question-number marker occurrence.
type anchor struct {
	offset int // character offset of the marker
	end    int // offset just past the marker
	number int
}

func findAnchors(text string) []anchor {
	matches := questionAnchorRe.FindAllStringSubmatchIndex(text, -1)
	anchors := make([]anchor, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		anchors = append(anchors, anchor{offset: m[0], end: m[1], number: n})
	}
	return anchors
}

// Parse splits extracted text into parsed questions and sections, with
// section back-references filled in.
func Parse(text string) ([]exam.Question, []exam.Section) {
	anchors := findAnchors(text)
	sections := findSections(text, anchors)

	questions := make([]exam.Question, 0, len(anchors))
	for i, a := range anchors {
		blockEnd := len(text)
		if i+1 < len(anchors) {
			blockEnd = anchors[i+1].offset
		}
		q := parseBlock(text[a.end:blockEnd], a.number)
		q.Offset = a.offset
		questions = append(questions, q)
	}

	assignRanges(sections, anchors)
	for si := range sections {
		sec := &sections[si]
		for qi := sec.QuestionStart; qi < sec.QuestionEnd; qi++ {
			order := sec.Order
			questions[qi].SectionOrder = &order
			questions[qi].SectionTitle = sec.Title
		}
	}
	return questions, sections
}

// assignRanges gives each section the contiguous run of question anchors
// whose offsets fall inside its character range. Anchors and sections are
// both offset-ordered, so a single linear scan suffices.
func assignRanges(sections []exam.Section, anchors []anchor) {
	qi := 0
	for si := range sections {
		sec := &sections[si]
		for qi < len(anchors) && anchors[qi].offset < sec.StartOffset {
			qi++
		}
		sec.QuestionStart = qi
		for qi < len(anchors) && anchors[qi].offset < sec.EndOffset {
			qi++
		}
		sec.QuestionEnd = qi
	}
}
