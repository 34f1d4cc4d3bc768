// Package mathml converts semantic math markup (MathML) to LaTeX.
//
// The flat converter walks a minimal element tree. Radical elements are
// handled separately: ConvertMarkup isolates every <msqrt>/<mroot> subtree
// into an opaque leaf before the flat conversion runs, then re-expands
// each leaf recursively, so radical structure is never silently dropped.
package mathml

import (
	"encoding/xml"
	"strings"
)

// Node is a minimal markup tree element: tag, attributes, ordered children
// and accumulated character data.
type Node struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

func (n *Node) attr(name string) string {
	if n.Attr == nil {
		return ""
	}
	return n.Attr[name]
}

// parseTree builds a Node tree from markup. Namespace prefixes are
// ignored; entities are resolved leniently.
func parseTree(markup string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false

	root := &Node{Tag: "#root"}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attr = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attr[a.Name.Local] = a.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].Text += string(t)
		}
	}

	if len(root.Children) == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

// indexTagOpen and findBalanced mirror the docx scanning helpers for
// MathML tags: explicit depth tracking so same-named nested elements are
// paired correctly without a full parse.

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

// innerOf strips the opening and closing tags of the element occupying
// element, which must start with <tag and end with </tag>.
func innerOf(element, tag string) string {
	gt := strings.IndexByte(element, '>')
	if gt < 0 {
		return ""
	}
	if element[gt-1] == '/' {
		return ""
	}
	close := "</" + tag + ">"
	if !strings.HasSuffix(element, close) {
		return ""
	}
	return element[gt+1 : len(element)-len(close)]
}
