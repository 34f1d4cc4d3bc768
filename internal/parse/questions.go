package parse

import (
	"regexp"
	"strings"

	"github.com/dgallion1/examgest/internal/exam"
)

var (
	// Choice/statement boundary markers. A leading * marks the correct
	// answer. The \b keeps letters inside words from matching.
	mcqMarkerRe = regexp.MustCompile(`(\*?)\b([A-D])\.\s`)
	tfMarkerRe  = regexp.MustCompile(`(\*?)\b([a-d])\)\s`)

	// Underlined answer letters, read from the block before underline
	// markers are stripped.
	underlineMCQRe = regexp.MustCompile(`\[u\]\s*\*?\s*([A-D])\s*(?:\[/u\])?\s*\.`)
	underlineTFRe  = regexp.MustCompile(`\[u\]\s*\*?\s*([a-d])\s*(?:\[/u\])?\s*\)`)

	underlineMarkRe = regexp.MustCompile(`\[/?u\]`)
)

// Recognized phrasings that split a block into its main part and the
// solution tail, and the solution into summary and detailed parts.
var (
	solutionMarkers = []string{"Lời giải", "Hướng dẫn giải", "Giải:"}
	detailMarkers   = []string{"Lời giải chi tiết", "Cách giải chi tiết", "Chi tiết:"}
)

var mcqLetters = []string{"A", "B", "C", "D"}
var tfLetters = []string{"a", "b", "c", "d"}

// stripUnderline rewrites underline markers back into their plain form so
// boundary regexes still match.
func stripUnderline(s string) string {
	return underlineMarkRe.ReplaceAllString(s, "")
}

// parseBlock classifies and parses the text of one question block (the
// text between its anchor and the next). Type detection runs on an
// underline-stripped copy; answer-key detection reads the raw block.
func parseBlock(block string, number int) exam.Question {
	plain := stripUnderline(block)
	switch {
	case distinctMarkers(mcqMarkerRe, plain) >= 2:
		return parseMCQ(block, plain, number)
	case distinctMarkers(tfMarkerRe, plain) >= 2:
		return parseTrueFalse(block, plain, number)
	default:
		return parseShortAnswer(plain, number)
	}
}

func distinctMarkers(re *regexp.Regexp, s string) int {
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		seen[m[2]] = true
	}
	return len(seen)
}

func parseMCQ(raw, plain string, number int) exam.Question {
	main, solution, detail := splitSolution(plain)

	choices := make(map[string]string, 4)
	for _, l := range mcqLetters {
		choices[l] = ""
	}

	ms := mcqMarkerRe.FindAllStringSubmatchIndex(main, -1)
	stem := main
	if len(ms) > 0 {
		stem = main[:ms[0][0]]
	}
	answer := ""
	for i, m := range ms {
		letter := main[m[4]:m[5]]
		end := len(main)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		choices[letter] = strings.TrimSpace(main[m[1]:end])
		if m[2] != m[3] && answer == "" { // starred marker
			answer = letter
		}
	}

	// A starred choice always wins; the underlined letter is the
	// fallback representation of "this is the correct answer".
	if answer == "" {
		if m := underlineMCQRe.FindStringSubmatch(raw); m != nil {
			answer = m[1]
		}
	}

	return exam.Question{
		Number:   number,
		Type:     exam.TypeMCQ,
		Stem:     strings.TrimSpace(stem),
		Choices:  choices,
		Answer:   answer,
		Solution: solution,
		Detail:   detail,
	}
}

func parseTrueFalse(raw, plain string, number int) exam.Question {
	main, solution, detail := splitSolution(plain)

	statements := make(map[string]string, 4)
	truth := make(map[string]*bool, 4)
	for _, l := range tfLetters {
		statements[l] = ""
		truth[l] = nil
	}

	ms := tfMarkerRe.FindAllStringSubmatchIndex(main, -1)
	stem := main
	if len(ms) > 0 {
		stem = main[:ms[0][0]]
	}
	for i, m := range ms {
		letter := main[m[4]:m[5]]
		end := len(main)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		statements[letter] = strings.TrimSpace(main[m[1]:end])
	}

	// A statement is true iff its letter was underlined anywhere in the
	// block. Not underlined means unset, never explicitly false: the
	// source format cannot express the difference.
	for _, m := range underlineTFRe.FindAllStringSubmatch(raw, -1) {
		v := true
		truth[m[1]] = &v
	}

	return exam.Question{
		Number:     number,
		Type:       exam.TypeTrueFalse,
		Stem:       strings.TrimSpace(stem),
		Statements: statements,
		Truth:      truth,
		Solution:   solution,
		Detail:     detail,
	}
}

func parseShortAnswer(plain string, number int) exam.Question {
	main, solution, detail := splitSolution(plain)
	return exam.Question{
		Number:   number,
		Type:     exam.TypeShortAnswer,
		Stem:     strings.TrimSpace(main),
		Solution: solution,
		Detail:   detail,
	}
}

// splitSolution splits block text at the first solution marker, and the
// tail again at the first detail marker.
func splitSolution(s string) (main, solution, detail string) {
	idx, mlen := findFirstMarker(s, solutionMarkers)
	if idx < 0 {
		return s, "", ""
	}
	main = s[:idx]
	tail := trimMarkerLead(s[idx+mlen:])

	didx, dlen := findFirstMarker(tail, detailMarkers)
	if didx < 0 {
		return main, strings.TrimSpace(tail), ""
	}
	return main, strings.TrimSpace(tail[:didx]), strings.TrimSpace(trimMarkerLead(tail[didx+dlen:]))
}

func findFirstMarker(s string, markers []string) (int, int) {
	best, bestLen := -1, 0
	for _, m := range markers {
		if i := strings.Index(s, m); i >= 0 && (best < 0 || i < best) {
			best, bestLen = i, len(m)
		}
	}
	return best, bestLen
}

func trimMarkerLead(s string) string {
	return strings.TrimLeft(s, " :.\t\r\n")
}
