// Package render turns a conversion result back into human-readable form:
// Markdown for the merged block sequence, and HTML via goldmark for the
// preview endpoint.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dgallion1/examgest/internal/exam"
)

var tokenRe = regexp.MustCompile(`\[!(m|img):\$\$?([^$\]]+)\$\$?\]`)

// Markdown renders the ordered block sequence, substituting placeholder
// tokens with their resolved LaTeX or image data URIs.
func Markdown(res *exam.Result) string {
	var sb strings.Builder
	for _, b := range res.Blocks {
		switch b.Kind {
		case exam.BlockSection:
			fmt.Fprintf(&sb, "## %s\n\n", substitute(b.Section.Title, res))
		case exam.BlockQuestion:
			writeQuestion(&sb, b.Question, res)
		}
	}
	return sb.String()
}

func writeQuestion(sb *strings.Builder, q *exam.Question, res *exam.Result) {
	fmt.Fprintf(sb, "**Câu %d.** %s\n\n", q.Number, substitute(q.Stem, res))

	switch q.Type {
	case exam.TypeMCQ:
		for _, l := range sortedKeys(q.Choices) {
			marker := l
			if l == q.Answer {
				marker = "**" + l + "**"
			}
			fmt.Fprintf(sb, "- %s. %s\n", marker, substitute(q.Choices[l], res))
		}
		sb.WriteString("\n")
	case exam.TypeTrueFalse:
		for _, l := range sortedKeys(q.Statements) {
			mark := ""
			if v := q.Truth[l]; v != nil && *v {
				mark = " ✓"
			}
			fmt.Fprintf(sb, "- %s) %s%s\n", l, substitute(q.Statements[l], res), mark)
		}
		sb.WriteString("\n")
	}

	if q.Solution != "" {
		fmt.Fprintf(sb, "*Lời giải.* %s\n\n", substitute(q.Solution, res))
	}
	if q.Detail != "" {
		fmt.Fprintf(sb, "%s\n\n", substitute(q.Detail, res))
	}
}

// HTML converts the rendered Markdown to HTML.
func HTML(res *exam.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(Markdown(res)), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}

// substitute replaces placeholder tokens by key lookup and rewrites
// underline markers as HTML (Markdown has no underline of its own).
func substitute(s string, res *exam.Result) string {
	s = tokenRe.ReplaceAllStringFunc(s, func(tok string) string {
		m := tokenRe.FindStringSubmatch(tok)
		kind, key := m[1], m[2]
		if kind == "img" {
			if uri, ok := res.Images[key]; ok {
				return fmt.Sprintf("![%s](%s)", key, uri)
			}
			return "*(image unavailable)*"
		}
		if latex := res.Latex[key]; latex != "" {
			return "$" + latex + "$"
		}
		if uri, ok := res.Images["fallback_"+key]; ok {
			return fmt.Sprintf("![%s](%s)", key, uri)
		}
		return "*(formula unavailable)*"
	})
	s = strings.ReplaceAll(s, "[u]", "<u>")
	s = strings.ReplaceAll(s, "[/u]", "</u>")
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
