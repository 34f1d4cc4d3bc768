package docx

import "strings"

// indexTagOpen returns the index of the next opening tag with exactly the
// given name at or after from, or -1. A prefix match like <w:rPr when
// searching for w:r does not count.
func indexTagOpen(s, tag string, from int) int {
	open := "<" + tag
	for {
		i := strings.Index(s[from:], open)
		if i < 0 {
			return -1
		}
		i += from
		j := i + len(open)
		if j >= len(s) {
			return -1
		}
		switch s[j] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return i
		}
		from = i + 1
	}
}

// findBalanced returns the end index (exclusive) of the element whose
// opening tag starts at start. Open/close pairs of the same tag are
// matched with an explicit depth counter, so same-named blocks that
// happen to nest are paired correctly. Self-closing tags end at their
// own '>'.
func findBalanced(s, tag string, start int) (int, bool) {
	close := "</" + tag + ">"

	gt := strings.IndexByte(s[start:], '>')
	if gt < 0 {
		return 0, false
	}
	if s[start+gt-1] == '/' {
		return start + gt + 1, true
	}

	depth := 1
	i := start + gt + 1
	for depth > 0 {
		nextOpen := indexTagOpen(s, tag, i)
		nextClose := strings.Index(s[i:], close)
		if nextClose < 0 {
			return 0, false
		}
		nextClose += i
		if nextOpen >= 0 && nextOpen < nextClose {
			g := strings.IndexByte(s[nextOpen:], '>')
			if g < 0 {
				return 0, false
			}
			if s[nextOpen+g-1] != '/' {
				depth++
			}
			i = nextOpen + g + 1
		} else {
			depth--
			i = nextClose + len(close)
		}
	}
	return i, true
}
