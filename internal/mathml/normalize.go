package mathml

import (
	"regexp"
	"strings"
)

const mathmlNamespace = "http://www.w3.org/1998/Math/MathML"

var (
	tagPrefixRe   = regexp.MustCompile(`(</?)[A-Za-z][A-Za-z0-9._-]*:`)
	xmlnsPrefixRe = regexp.MustCompile(`\s+xmlns:[A-Za-z0-9._-]+="[^"]*"`)
	mathOpenRe    = regexp.MustCompile(`<math(\s[^>]*)?>`)
	loneRadicalRe = regexp.MustCompile(`<mo(?:\s[^>]*)?>\s*(?:√|&#8730;|&radic;)\s*</mo>`)
)

// Normalize prepares raw semantic math markup for conversion: namespace
// tag prefixes are stripped, the expected namespace declaration is
// ensured, single-row matrix wrappers are inlined, and the two legacy
// radical representations are rewritten into explicit radical elements.
func Normalize(markup string) string {
	s := strings.TrimSpace(markup)
	s = tagPrefixRe.ReplaceAllString(s, "$1")
	s = xmlnsPrefixRe.ReplaceAllString(s, "")
	s = ensureNamespace(s)
	s = inlineSingleRows(s)
	s = rewriteEnclosedRadicals(s)
	s = rewriteLoneRadicals(s)
	return s
}

func ensureNamespace(s string) string {
	loc := mathOpenRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	open := s[loc[0]:loc[1]]
	if strings.Contains(open, "xmlns=") {
		return s
	}
	// Splice the declaration in; other attributes on the open tag stay.
	at := loc[0] + len("<math")
	return s[:at] + ` xmlns="` + mathmlNamespace + `"` + s[at:]
}

// inlineSingleRows unwraps mtable blocks that hold exactly one row into a
// plain mrow, so a one-line "matrix" renders inline instead of as a
// matrix environment.
func inlineSingleRows(s string) string {
	var out strings.Builder
	i := 0
	for {
		start := indexTagOpen(s, "mtable", i)
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		end, ok := findBalanced(s, "mtable", start)
		if !ok {
			out.WriteString(s[i:])
			break
		}
		out.WriteString(s[i:start])
		out.WriteString(inlineTable(s[start:end]))
		i = end
	}
	return out.String()
}

func inlineTable(block string) string {
	inner := innerOf(block, "mtable")
	first := indexTagOpen(inner, "mtr", 0)
	if first < 0 {
		return block
	}
	if second := indexTagOpen(inner, "mtr", first+1); second >= 0 {
		return block
	}
	rowEnd, ok := findBalanced(inner, "mtr", first)
	if !ok {
		return block
	}
	row := innerOf(inner[first:rowEnd], "mtr")

	var cells strings.Builder
	j := 0
	for {
		cs := indexTagOpen(row, "mtd", j)
		if cs < 0 {
			break
		}
		ce, ok := findBalanced(row, "mtd", cs)
		if !ok {
			break
		}
		cells.WriteString(innerOf(row[cs:ce], "mtd"))
		j = ce
	}
	return "<mrow>" + cells.String() + "</mrow>"
}

// rewriteEnclosedRadicals turns <menclose notation="radical"> blocks into
// explicit <msqrt> elements.
func rewriteEnclosedRadicals(s string) string {
	var out strings.Builder
	i := 0
	for {
		start := indexTagOpen(s, "menclose", i)
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		end, ok := findBalanced(s, "menclose", start)
		if !ok {
			out.WriteString(s[i:])
			break
		}
		out.WriteString(s[i:start])
		block := s[start:end]
		gt := strings.IndexByte(block, '>')
		if gt > 0 && strings.Contains(block[:gt], `notation="radical"`) {
			out.WriteString("<msqrt>" + innerOf(block, "menclose") + "</msqrt>")
		} else {
			out.WriteString(block)
		}
		i = end
	}
	return out.String()
}

// rewriteLoneRadicals wraps the element following a bare √ operator in an
// explicit <msqrt>.
func rewriteLoneRadicals(s string) string {
	for {
		loc := loneRadicalRe.FindStringIndex(s)
		if loc == nil {
			return s
		}
		rest := s[loc[1]:]
		radicand, end := firstElement(rest)
		if radicand == "" {
			// No following element to absorb; drop the operator so it
			// cannot match again.
			s = s[:loc[0]] + rest
			continue
		}
		s = s[:loc[0]] + "<msqrt>" + radicand + "</msqrt>" + rest[end:]
	}
}

// firstElement returns the first complete element in s (leading whitespace
// skipped) and the offset just past it.
func firstElement(s string) (string, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	if i >= len(s) || s[i] != '<' || strings.HasPrefix(s[i:], "</") {
		return "", 0
	}
	j := i + 1
	for j < len(s) && !strings.ContainsRune(" \t\r\n/>", rune(s[j])) {
		j++
	}
	tag := s[i+1 : j]
	if tag == "" {
		return "", 0
	}
	end, ok := findBalanced(s, tag, i)
	if !ok {
		return "", 0
	}
	return s[i:end], end
}
