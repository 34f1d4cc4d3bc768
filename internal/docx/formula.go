package docx

import (
	"fmt"
	"regexp"
	"strings"
)

// Formula is an embedded binary equation object located in the document
// markup. Keys are assigned in document order during the scan and are
// stable for the rest of the request.
type Formula struct {
	Key         string
	BinaryRef   string // relationship id of the binary object
	PreviewRef  string // relationship id of the preview image, "" if none
	ContentHash string // hex digest of the payload, set once it is read
}

// MathToken is the placeholder inserted in place of a formula block.
func MathToken(key string) string { return "[!m:$" + key + "$]" }

// ImageToken is the placeholder inserted in place of an image block.
func ImageToken(key string) string { return "[!img:$" + key + "$]" }

var (
	oleObjectIDRe = regexp.MustCompile(`<o:OLEObject[^>]*\br:id="([^"]+)"`)
	imagedataIDRe = regexp.MustCompile(`<v:imagedata[^>]*\br:id="([^"]+)"`)
	blipEmbedRe   = regexp.MustCompile(`<a:blip[^>]*\br:embed="([^"]+)"`)
)

// LocateFormulas scans the markup for balanced <w:object> blocks, rewrites
// each convertible one in place to its placeholder token, and returns the
// rewritten markup plus the located formulas in document order. Blocks
// whose binary relationship id is unknown are left untouched.
func LocateFormulas(markup string, rels map[string]string) (string, []*Formula) {
	var out strings.Builder
	var formulas []*Formula
	i := 0
	for {
		start := indexTagOpen(markup, "w:object", i)
		if start < 0 {
			out.WriteString(markup[i:])
			break
		}
		end, ok := findBalanced(markup, "w:object", start)
		if !ok {
			out.WriteString(markup[i:])
			break
		}
		block := markup[start:end]

		m := oleObjectIDRe.FindStringSubmatch(block)
		if m == nil || rels[m[1]] == "" {
			out.WriteString(markup[i:end])
			i = end
			continue
		}

		f := &Formula{
			Key:        fmt.Sprintf("m%d", len(formulas)+1),
			BinaryRef:  m[1],
			PreviewRef: previewRef(block),
		}
		out.WriteString(markup[i:start])
		out.WriteString(MathToken(f.Key))
		formulas = append(formulas, f)
		i = end
	}
	return out.String(), formulas
}

// previewRef extracts the preview-image relationship id from whichever of
// the two preview representations appears first in the block.
func previewRef(block string) string {
	vml := imagedataIDRe.FindStringSubmatchIndex(block)
	blip := blipEmbedRe.FindStringSubmatchIndex(block)
	switch {
	case vml != nil && (blip == nil || vml[0] < blip[0]):
		return block[vml[2]:vml[3]]
	case blip != nil:
		return block[blip[2]:blip[3]]
	}
	return ""
}
