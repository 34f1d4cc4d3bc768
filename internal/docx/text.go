package docx

import (
	"html"
	"regexp"
	"strings"
)

// Underline markers inserted into extracted text. The question parser
// reads these to recover answer keys before stripping them.
const (
	UnderlineOpen  = "[u]"
	UnderlineClose = "[/u]"
)

var (
	underlinePropRe = regexp.MustCompile(`<w:u\b([^>]*)>`)
	runTextRe       = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	paraBreakRe     = regexp.MustCompile(`</w:p>|<w:p\s*/>`)
	lineBreakRe     = regexp.MustCompile(`<w:br\s*/?>|<w:cr\s*/?>`)
	tabRe           = regexp.MustCompile(`<w:tab\s*/?>`)
	anyTagRe        = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	manyBlankRe     = regexp.MustCompile(`\n{3,}`)
	trailSpaceRe    = regexp.MustCompile(`[ \t]+\n`)
)

// ExtractText converts placeholder-bearing document markup into plain
// text. Placeholder tokens survive verbatim, underline-styled runs are
// wrapped in explicit underline markers, and all other formatting is
// stripped. The pass is deliberately text-level rather than a strict XML
// parse: exam papers in the wild carry markup that strict parsing rejects,
// and a stray unmatched tag must degrade to noise, not an error.
func ExtractText(markup string) string {
	s := markUnderlines(markup)

	s = paraBreakRe.ReplaceAllString(s, "\n")
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = tabRe.ReplaceAllString(s, " ")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	s = trailSpaceRe.ReplaceAllString(s, "\n")
	s = manyBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// markUnderlines wraps the text of underline-styled runs in underline
// markers. Runs are found by balanced scanning so that a malformed or
// truncated run simply passes through unmarked.
func markUnderlines(markup string) string {
	var out strings.Builder
	i := 0
	for {
		start := indexTagOpen(markup, "w:r", i)
		if start < 0 {
			out.WriteString(markup[i:])
			break
		}
		end, ok := findBalanced(markup, "w:r", start)
		if !ok {
			out.WriteString(markup[i:])
			break
		}
		out.WriteString(markup[i:start])
		run := markup[start:end]
		if runUnderlined(run) {
			run = runTextRe.ReplaceAllString(run, "<w:t>"+UnderlineOpen+"${1}"+UnderlineClose+"</w:t>")
		}
		out.WriteString(run)
		i = end
	}
	return out.String()
}

func runUnderlined(run string) bool {
	m := underlinePropRe.FindStringSubmatch(run)
	if m == nil {
		return false
	}
	return !strings.Contains(m[1], `"none"`)
}
