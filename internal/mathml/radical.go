package mathml

import (
	"fmt"
	"strings"
)

// Radical subtrees survive conversion by never reaching the flat walk:
// each one is swapped for an opaque leaf token, the remainder is converted
// once, and every token is then re-expanded by running the same procedure
// on the radical's own children. The leaf tokens are plain identifiers and
// cannot be mishandled the way radical-shaped trees are.

const maxRadicalDepth = 32

var radicalTags = []string{"msqrt", "mroot"}

// ConvertMarkup converts normalized MathML markup to LaTeX, guaranteeing
// that no radical subtree is silently lost.
func ConvertMarkup(markup string) string {
	return convertRadicals(markup, 0)
}

func convertRadicals(markup string, depth int) string {
	if depth > maxRadicalDepth {
		return Convert(markup)
	}

	type radical struct {
		token string
		tag   string
		inner string
	}
	var found []radical

	// Outermost radicals first: each replacement removes the whole
	// subtree (nested radicals included), so rescanning from the start
	// always yields the next outermost block without corrupting offsets.
	for {
		start, tag := nextRadical(markup)
		if start < 0 {
			break
		}
		end, ok := findBalanced(markup, tag, start)
		if !ok {
			break
		}
		token := fmt.Sprintf("RADTOK%dX%d", depth, len(found))
		found = append(found, radical{
			token: token,
			tag:   tag,
			inner: innerOf(markup[start:end], tag),
		})
		markup = markup[:start] + "<mi>" + token + "</mi>" + markup[end:]
	}

	latex := Convert(markup)

	for _, r := range found {
		var repl string
		if r.tag == "mroot" {
			base, index := splitFirstChild(r.inner)
			repl = `\sqrt[` + convertRadicals(index, depth+1) + `]{` + convertRadicals(base, depth+1) + `}`
		} else {
			repl = `\sqrt{` + convertRadicals(r.inner, depth+1) + `}`
		}
		latex = strings.Replace(latex, r.token, repl, 1)
	}
	return latex
}

func nextRadical(markup string) (int, string) {
	best, bestTag := -1, ""
	for _, tag := range radicalTags {
		if i := indexTagOpen(markup, tag, 0); i >= 0 && (best < 0 || i < best) {
			best, bestTag = i, tag
		}
	}
	return best, bestTag
}

// splitFirstChild splits an mroot's children into (radicand, index): the
// first top-level closed element is the radicand, everything after it is
// the index. Depth tracking keeps a nested same-named child from ending
// the split early.
func splitFirstChild(inner string) (string, string) {
	i := strings.IndexByte(inner, '<')
	if i < 0 {
		return inner, ""
	}
	j := i + 1
	for j < len(inner) && !strings.ContainsRune(" \t\r\n/>", rune(inner[j])) {
		j++
	}
	tag := inner[i+1 : j]
	if tag == "" {
		return inner, ""
	}
	end, ok := findBalanced(inner, tag, i)
	if !ok {
		return inner, ""
	}
	return inner[:end], inner[end:]
}
